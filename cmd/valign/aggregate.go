package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/align"
)

var (
	aggregateVectorFile string
	aggregatePolicy     string
)

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVar(&aggregateVectorFile, "vector-file", "", "Evaluate a pre-computed vector (JSON array) instead of embedding text")
	aggregateCmd.Flags().StringVarP(&aggregatePolicy, "policy", "p", "", "Aggregation policy: mean, min, or max (default from config)")
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [text]",
	Short: "Summarize alignment across all values as one score",
	Long: `Summarize alignment across all values as one score.

Policies: mean (balanced summary), min (worst case, conservative),
max (best case, optimistic). min <= mean <= max always holds for the
same action.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAggregate,
}

// AggregateResponse is the response for the aggregate command.
type AggregateResponse struct {
	Score  float32 `json:"score"`
	Policy string  `json:"policy"`
	Values int     `json:"values"`
}

func runAggregate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	refs := mustLoadReferences(root, cfg)

	policy := align.Policy(aggregatePolicy)
	if aggregatePolicy == "" {
		policy = align.Policy(cfg.Policy)
	}

	vectors := make([][]float32, len(refs.Set))
	for i, v := range refs.Set {
		vectors[i] = v.Vector
	}

	action := actionVector(ctx, cfg, aggregateVectorFile, firstArg(args))
	score, err := align.Aggregate(action, vectors, policy)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Aggregate alignment (%s over %d values): %.3f\n", policy, len(vectors), score)
	} else {
		outputJSON(AggregateResponse{Score: score, Policy: string(policy), Values: len(vectors)})
	}
	return nil
}
