package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/umaja/valign/internal/config"
	"github.com/umaja/valign/internal/registry"
	"github.com/umaja/valign/internal/values"
)

func init() {
	rootCmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile value definitions into reference vectors",
	Long: `Compile value definitions into reference vectors.

Reads values.yml, embeds every seed phrase through the configured
encoder, blends each entry's phrases into a single unit vector, and
stores the result in the workspace registry. Judgment commands read the
registry, so compile must be re-run after editing values.yml or
switching embedding models.`,
	RunE: runCompile,
}

// CompileResponse is the response for the compile command.
type CompileResponse struct {
	Status     string   `json:"status"`
	Values     []string `json:"values"`
	Norms      []string `json:"norms"`
	Model      string   `json:"model"`
	Dimensions int      `json:"dimensions"`
	DurationMs int64    `json:"duration_ms"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	defs, err := values.LoadFile(cfg.ValuesPath(root))
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	provider := newProvider(cfg)
	if err := provider.IsAvailable(ctx); err != nil {
		exitWithError(ExitEncoderError, "Ollama is not running\n\nStart Ollama with 'ollama serve' or install from https://ollama.ai")
	}
	if has, err := provider.HasModel(ctx); err == nil && !has {
		exitWithError(ExitEncoderError, "model %s not found\n\nPull it with 'ollama pull %s'", cfg.Model, cfg.Model)
	}

	start := time.Now()
	compiled, err := values.Compile(ctx, provider, defs)
	if err != nil {
		exitWithError(ExitEncoderError, "%v", err)
	}

	entries := make([]registry.Entry, 0, len(compiled.Set)+len(compiled.Norms))
	for _, v := range compiled.Set {
		entries = append(entries, registry.Entry{Name: v.Name, Kind: values.KindValue, Vector: v.Vector})
	}
	for i, norm := range compiled.Norms {
		entries = append(entries, registry.Entry{Name: compiled.NormNames[i], Kind: values.KindNorm, Vector: norm})
	}

	db, err := registry.Open(config.RegistryPath(root))
	if err != nil {
		exitWithError(ExitRegistryError, "opening registry: %v", err)
	}
	defer db.Close()

	meta := registry.Meta{
		Model:      compiled.Model,
		Dimensions: compiled.Dimensions,
		CompiledAt: time.Now(),
	}
	if err := db.Replace(entries, meta); err != nil {
		exitWithError(ExitRegistryError, "storing vectors: %v", err)
	}

	duration := time.Since(start)

	if humanOutput {
		fmt.Printf("Compiled %d values and %d norms with %s in %v\n",
			len(compiled.Set), len(compiled.Norms), compiled.Model, duration.Round(time.Millisecond))
	} else {
		norms := compiled.NormNames
		if norms == nil {
			norms = []string{}
		}
		outputJSON(CompileResponse{
			Status:     "compiled",
			Values:     compiled.Set.Names(),
			Norms:      norms,
			Model:      compiled.Model,
			Dimensions: compiled.Dimensions,
			DurationMs: duration.Milliseconds(),
		})
	}
	return nil
}
