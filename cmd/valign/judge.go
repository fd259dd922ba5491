package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/align"
)

var judgeVectorFile string

func init() {
	rootCmd.AddCommand(judgeCmd)

	judgeCmd.Flags().StringVar(&judgeVectorFile, "vector-file", "", "Judge a pre-computed vector (JSON array) instead of embedding text")
}

var judgeCmd = &cobra.Command{
	Use:   "judge [text]",
	Short: "Score an action against every compiled value",
	Long: `Score an action against every compiled value.

This is the verbose judgment: one alignment score per value, each in
[0,1] where 1 means same direction, 0.5 orthogonal, and 0 opposite.
Use 'valign check' for the pass/fail gate or 'valign aggregate' for a
single summary score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJudge,
}

// JudgeResponse is the response for the judge command.
type JudgeResponse struct {
	Scores map[string]float32 `json:"scores"`
	Model  string             `json:"model"`
}

func runJudge(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	refs := mustLoadReferences(root, cfg)

	judge, err := align.NewJudge(refs.Set)
	if err != nil {
		exitWithError(ExitRegistryError, "%v (run 'valign compile')", err)
	}

	action := actionVector(ctx, cfg, judgeVectorFile, firstArg(args))
	result := judge.Judge(action)

	if humanOutput {
		fmt.Printf("Judgment across %d values:\n", len(result))
		printScoresHuman(result)
	} else {
		outputJSON(JudgeResponse{Scores: result, Model: cfg.Model})
	}
	return nil
}
