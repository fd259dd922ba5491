package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(valuesCmd)
}

var valuesCmd = &cobra.Command{
	Use:   "values",
	Short: "List compiled values and norms",
	RunE:  runValues,
}

// ValueInfo describes one compiled reference vector.
type ValueInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ValuesResponse is the response for the values command.
type ValuesResponse struct {
	Values     []ValueInfo `json:"values"`
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions"`
	CompiledAt string      `json:"compiled_at"`
}

func runValues(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	refs := mustLoadReferences(root, cfg)

	infos := make([]ValueInfo, 0, len(refs.Set)+len(refs.NormNames))
	for _, v := range refs.Set {
		infos = append(infos, ValueInfo{Name: v.Name, Kind: "value"})
	}
	for _, name := range refs.NormNames {
		infos = append(infos, ValueInfo{Name: name, Kind: "norm"})
	}

	if humanOutput {
		fmt.Printf("%d reference vectors (%s, %d dimensions)\n\n",
			len(infos), refs.Meta.Model, refs.Meta.Dimensions)
		for _, info := range infos {
			fmt.Printf("  %-20s %s\n", info.Name, info.Kind)
		}
	} else {
		outputJSON(ValuesResponse{
			Values:     infos,
			Model:      refs.Meta.Model,
			Dimensions: refs.Meta.Dimensions,
			CompiledAt: refs.Meta.CompiledAt.Format(time.RFC3339),
		})
	}
	return nil
}
