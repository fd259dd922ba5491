package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new valign workspace",
	Long: `Initialize a new valign workspace in the current directory.

Creates:
  .valign/
  └── config.json     # Default config
  values.yml          # Starter value definitions`,
	RunE: runInit,
}

// starterValues seeds a new workspace with a minimal, editable value set.
const starterValues = `# Value definitions for valign.
# Each entry becomes one reference vector: its phrases are embedded and
# blended (weights default to 1). kind "norm" marks promoted norms used
# by 'valign suggest' instead of the acceptability gate.
values:
  - name: kindness
    phrases:
      - text: be kind and considerate to others
  - name: honesty
    phrases:
      - text: be truthful and transparent
  - name: curiosity
    kind: norm
    phrases:
      - text: explore ideas with an open mind
`

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getWorkspaceRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsWorkspace(root) {
		exitWithError(ExitError, "directory already contains a valign workspace")
	}

	if err := os.MkdirAll(config.ValignPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .valign directory: %v", err)
	}

	cfg := config.Default()
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	valuesPath := cfg.ValuesPath(root)
	if _, err := os.Stat(valuesPath); os.IsNotExist(err) {
		if err := os.WriteFile(valuesPath, []byte(starterValues), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", cfg.ValuesFile, err)
		}
	}

	if humanOutput {
		fmt.Printf("Initialized valign workspace in %s\n", root)
		fmt.Println("Edit values.yml, then run 'valign compile'.")
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}
