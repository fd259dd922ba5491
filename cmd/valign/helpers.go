package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/umaja/valign/internal/align"
	"github.com/umaja/valign/internal/config"
	"github.com/umaja/valign/internal/embedding"
	"github.com/umaja/valign/internal/registry"
	"github.com/umaja/valign/internal/values"
)

// mustFindWorkspace locates the enclosing workspace or exits.
func mustFindWorkspace() string {
	start, exitCode := getWorkspaceRoot()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindWorkspace(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nRun 'valign init' to create a workspace.", err)
	}
	return root
}

// mustLoadConfig loads the workspace config or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// newProvider builds the encoder client from workspace config.
func newProvider(cfg *config.Config) *embedding.OllamaProvider {
	opts := []embedding.OllamaOption{
		embedding.WithModel(cfg.Model),
		embedding.WithDimensions(cfg.Dimensions),
	}
	if cfg.OllamaURL != "" {
		opts = append(opts, embedding.WithBaseURL(cfg.OllamaURL))
	}
	return embedding.NewOllamaProvider(opts...)
}

// references holds the compiled reference vectors loaded from the registry.
type references struct {
	Set       align.ValueSet
	Norms     [][]float32
	NormNames []string
	Meta      registry.Meta
}

// mustLoadReferences reads compiled vectors from the registry, split into
// the gating value set and the promoted-norm list. Exits when the registry
// is empty or was compiled with a different model than the config names.
func mustLoadReferences(root string, cfg *config.Config) references {
	db, err := registry.Open(config.RegistryPath(root))
	if err != nil {
		exitWithError(ExitRegistryError, "opening registry: %v", err)
	}
	defer db.Close()

	if err := db.VerifyModel(cfg.Model, cfg.Dimensions); err != nil {
		if errors.Is(err, registry.ErrEmpty) {
			exitWithError(ExitRegistryError, "no compiled values\n\nRun 'valign compile' first.")
		}
		exitWithError(ExitRegistryError, "%v", err)
	}

	entries, err := db.Entries()
	if err != nil {
		exitWithError(ExitRegistryError, "reading registry: %v", err)
	}

	meta, err := db.Meta()
	if err != nil {
		exitWithError(ExitRegistryError, "reading registry metadata: %v", err)
	}

	refs := references{Meta: meta}
	for _, entry := range entries {
		if entry.Kind == values.KindNorm {
			refs.Norms = append(refs.Norms, entry.Vector)
			refs.NormNames = append(refs.NormNames, entry.Name)
		} else {
			refs.Set = append(refs.Set, align.Value{Name: entry.Name, Vector: entry.Vector})
		}
	}
	return refs
}

// actionVector resolves the action to judge: the contents of vectorFile
// when given, otherwise the embedding of the argument text.
func actionVector(ctx context.Context, cfg *config.Config, vectorFile, text string) []float32 {
	if vectorFile != "" {
		v, err := readVectorFile(vectorFile)
		if err != nil {
			exitWithError(ExitError, "reading vector file: %v", err)
		}
		if len(v) != cfg.Dimensions {
			exitWithError(ExitError, "vector in %s has %d dimensions, config expects %d", vectorFile, len(v), cfg.Dimensions)
		}
		return v
	}

	if text == "" {
		exitWithError(ExitError, "provide action text or --vector-file")
	}

	provider := newProvider(cfg)
	if err := provider.IsAvailable(ctx); err != nil {
		exitWithError(ExitEncoderError, "Ollama is not running\n\nStart Ollama with 'ollama serve' or pass --vector-file.")
	}

	emb, err := provider.Embed(ctx, text)
	if err != nil {
		exitWithError(ExitEncoderError, "embedding action: %v", err)
	}
	return emb.Vector
}

// readVectorFile parses a JSON array of numbers.
func readVectorFile(path string) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v []float32
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%s contains an empty vector", path)
	}
	return v, nil
}

// firstArg returns args[0] or the empty string.
func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
