package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/align"
)

var (
	violationsVectorFile string
	violationsThreshold  float32
)

func init() {
	rootCmd.AddCommand(violationsCmd)

	violationsCmd.Flags().StringVar(&violationsVectorFile, "vector-file", "", "Evaluate a pre-computed vector (JSON array) instead of embedding text")
	violationsCmd.Flags().Float32VarP(&violationsThreshold, "threshold", "t", -1, "Violation threshold per value (default from config)")
}

var violationsCmd = &cobra.Command{
	Use:   "violations [text]",
	Short: "List values the action scores below threshold",
	Long: `List values the action scores below threshold.

Each value is evaluated independently, never aggregated: one badly
violated value must not be hidden by averaging against well-aligned
ones. Output order follows the value definition order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViolations,
}

// ViolationsResponse is the response for the violations command.
type ViolationsResponse struct {
	Violations []string `json:"violations"`
	Threshold  float32  `json:"threshold"`
	Total      int      `json:"total_values"`
}

func runViolations(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	refs := mustLoadReferences(root, cfg)

	threshold := violationsThreshold
	if threshold < 0 {
		threshold = cfg.Threshold
	}
	if threshold > 1 {
		exitWithError(ExitError, "threshold %v out of range [0,1]", threshold)
	}

	action := actionVector(ctx, cfg, violationsVectorFile, firstArg(args))
	violations := align.Violations(action, refs.Set, threshold)

	if humanOutput {
		if len(violations) == 0 {
			fmt.Printf("No violations across %d values (threshold %.2f)\n", len(refs.Set), threshold)
		} else {
			fmt.Printf("%d violations (threshold %.2f):\n", len(violations), threshold)
			for _, name := range violations {
				fmt.Printf("  %s\n", name)
			}
		}
	} else {
		outputJSON(ViolationsResponse{
			Violations: violations,
			Threshold:  threshold,
			Total:      len(refs.Set),
		})
	}
	return nil
}
