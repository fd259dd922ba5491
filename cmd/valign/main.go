// Package main provides the valign CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Pick up OLLAMA_HOST / VALIGN_ROOT from a local .env if present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "valign",
	Short: "Semantic value-alignment scoring for embedding vectors",
	Long: `valign judges actions against a named set of value embeddings.

Values are defined as seed phrases in values.yml, compiled once into
reference vectors through an external encoder, and stored in a local
registry. Judgment commands then score action vectors against them:
per-value scores, aggregate scores, threshold violations, and a
conjunctive acceptability gate. All commands output JSON by default for
easy integration with moderation pipelines and other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getWorkspaceRoot returns the directory where workspace discovery starts:
// VALIGN_ROOT if set, else the current directory.
func getWorkspaceRoot() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	if root := os.Getenv("VALIGN_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}
