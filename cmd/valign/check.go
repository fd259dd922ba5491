package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/align"
)

var (
	checkVectorFile string
	checkThreshold  float32
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkVectorFile, "vector-file", "", "Check a pre-computed vector (JSON array) instead of embedding text")
	checkCmd.Flags().Float32VarP(&checkThreshold, "threshold", "t", -1, "Minimum acceptable score per value (default from config)")
}

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Gate an action: every value must meet the threshold",
	Long: `Gate an action: every value must meet the threshold.

The gate is conjunctive: a single value scoring below the threshold
vetoes the action regardless of how well the others score. The full
judgment is printed either way so the failing value is visible.

Exits 0 when the action is acceptable, 5 when vetoed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// CheckResponse is the response for the check command.
type CheckResponse struct {
	Acceptable bool               `json:"acceptable"`
	Threshold  float32            `json:"threshold"`
	Scores     map[string]float32 `json:"scores"`
	Violations []string           `json:"violations"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	refs := mustLoadReferences(root, cfg)

	threshold := checkThreshold
	if threshold < 0 {
		threshold = cfg.Threshold
	}
	if threshold > 1 {
		exitWithError(ExitError, "threshold %v out of range [0,1]", threshold)
	}

	judge, err := align.NewJudge(refs.Set)
	if err != nil {
		exitWithError(ExitRegistryError, "%v (run 'valign compile')", err)
	}

	action := actionVector(ctx, cfg, checkVectorFile, firstArg(args))
	ok, result := judge.IsAcceptable(action, threshold)
	violations := align.Violations(action, refs.Set, threshold)

	if humanOutput {
		if ok {
			fmt.Printf("ACCEPTABLE (all %d values >= %.2f)\n", len(result), threshold)
		} else {
			fmt.Printf("VETOED (below %.2f: %v)\n", threshold, violations)
		}
		printScoresHuman(result)
	} else {
		outputJSON(CheckResponse{
			Acceptable: ok,
			Threshold:  threshold,
			Scores:     result,
			Violations: violations,
		})
	}

	if !ok {
		os.Exit(ExitVeto)
	}
	return nil
}
