package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/align"
)

var (
	suggestVectorFile string
	suggestAlpha      float32
	suggestOut        string
)

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVar(&suggestVectorFile, "vector-file", "", "Improve a pre-computed vector (JSON array) instead of embedding text")
	suggestCmd.Flags().Float32VarP(&suggestAlpha, "alpha", "a", -1, "Interpolation toward the norm centroid, 0-1 (default from config)")
	suggestCmd.Flags().StringVarP(&suggestOut, "out", "o", "", "Write the improved vector to a file instead of stdout")
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Score an action against promoted norms and nudge it toward them",
	Long: `Score an action against promoted norms and nudge it toward them.

The norm score is the mean alignment with every promoted norm (entries
with kind "norm" in values.yml): an encouragement signal with partial
credit, not a gate. The improved vector is one interpolation step
toward the unit-normalized norm centroid; alpha 0 keeps the action's
direction, alpha 1 lands exactly on the centroid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

// SuggestResponse is the response for the suggest command.
type SuggestResponse struct {
	NormScore     float32   `json:"norm_score"`
	ImprovedScore float32   `json:"improved_score"`
	Alpha         float32   `json:"alpha"`
	Norms         []string  `json:"norms"`
	Improved      []float32 `json:"improved,omitempty"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	refs := mustLoadReferences(root, cfg)

	if len(refs.Norms) == 0 {
		exitWithError(ExitRegistryError, "no promoted norms compiled\n\nMark entries with 'kind: norm' in values.yml and run 'valign compile'.")
	}

	alpha := suggestAlpha
	if alpha < 0 {
		alpha = cfg.Alpha
	}
	if alpha > 1 {
		exitWithError(ExitError, "alpha %v out of range [0,1]", alpha)
	}

	promoter, err := align.NewPromoter(refs.Norms)
	if err != nil {
		exitWithError(ExitRegistryError, "%v (run 'valign compile')", err)
	}

	action := actionVector(ctx, cfg, suggestVectorFile, firstArg(args))
	normScore := promoter.EvaluateAction(action)
	improved := promoter.SuggestImprovement(action, alpha)
	improvedScore := promoter.EvaluateAction(improved)

	if suggestOut != "" {
		data, err := json.Marshal(improved)
		if err != nil {
			exitWithError(ExitError, "encoding vector: %v", err)
		}
		if err := os.WriteFile(suggestOut, data, 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", suggestOut, err)
		}
	}

	resp := SuggestResponse{
		NormScore:     normScore,
		ImprovedScore: improvedScore,
		Alpha:         alpha,
		Norms:         refs.NormNames,
	}
	if suggestOut == "" {
		resp.Improved = improved
	}

	if humanOutput {
		fmt.Printf("Norm score %.3f -> %.3f after nudge (alpha %.2f, norms: %v)\n",
			normScore, improvedScore, alpha, refs.NormNames)
		if suggestOut != "" {
			fmt.Printf("Improved vector written to %s\n", suggestOut)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
