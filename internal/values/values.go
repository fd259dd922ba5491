// Package values loads value-set definitions and compiles them into
// reference vectors.
//
// A definition file declares named values (gating references) and norms
// (promoted, encouragement-only references), each seeded by one or more
// phrases. Compilation embeds every phrase and blends the phrase vectors
// into a single reference direction per entry.
package values

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/umaja/valign/internal/align"
	"github.com/umaja/valign/internal/embedding"
)

// Entry kinds.
const (
	KindValue = "value" // judged per name, can veto
	KindNorm  = "norm"  // promoted norm, partial credit only
)

// Definition is one entry in the values file.
type Definition struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind,omitempty"` // "value" (default) or "norm"
	Phrases []Phrase `yaml:"phrases"`
}

// Phrase is a seed text with an optional blend weight.
type Phrase struct {
	Text   string  `yaml:"text"`
	Weight float32 `yaml:"weight,omitempty"` // defaults to 1
}

// File is a parsed values definition file.
type File struct {
	Values []Definition `yaml:"values"`
}

// LoadFile reads and validates a values definition file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(f.Values) == 0 {
		return nil, fmt.Errorf("%s must define at least one value", path)
	}

	seen := make(map[string]bool)
	for i, def := range f.Values {
		if def.Name == "" {
			return nil, fmt.Errorf("value entry %d must have a name", i+1)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate value name %q", def.Name)
		}
		seen[def.Name] = true

		switch def.Kind {
		case "":
			f.Values[i].Kind = KindValue
		case KindValue, KindNorm:
		default:
			return nil, fmt.Errorf("value %q: invalid kind %q (valid: value, norm)", def.Name, def.Kind)
		}

		if len(def.Phrases) == 0 {
			return nil, fmt.Errorf("value %q must have at least one phrase", def.Name)
		}
		for j, phrase := range def.Phrases {
			if phrase.Text == "" {
				return nil, fmt.Errorf("value %q: phrase %d has empty text", def.Name, j+1)
			}
			if phrase.Weight < 0 {
				return nil, fmt.Errorf("value %q: phrase %d has negative weight", def.Name, j+1)
			}
		}
	}

	return &f, nil
}

// Compiled is the outcome of compiling a definition file: gating values in
// file order plus the promoted-norm list.
type Compiled struct {
	Set        align.ValueSet
	Norms      [][]float32
	NormNames  []string
	Model      string
	Dimensions int
}

// Compile embeds every phrase of every definition and blends each entry
// into a single reference vector via align.Balance. Phrase weights carry
// through to the blend; absent weights count as 1.
func Compile(ctx context.Context, provider embedding.Provider, f *File) (*Compiled, error) {
	out := &Compiled{
		Model:      provider.ModelName(),
		Dimensions: provider.Dimensions(),
	}

	for _, def := range f.Values {
		texts := make([]string, len(def.Phrases))
		weights := make([]float32, len(def.Phrases))
		for i, phrase := range def.Phrases {
			texts[i] = phrase.Text
			weights[i] = phrase.Weight
			if weights[i] == 0 {
				weights[i] = 1
			}
		}

		vectors, err := embedding.EmbedAll(ctx, provider, texts)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", def.Name, err)
		}

		blended, err := align.Balance(vectors, weights)
		if err != nil {
			return nil, fmt.Errorf("blending %q: %w", def.Name, err)
		}

		if def.Kind == KindNorm {
			out.Norms = append(out.Norms, blended)
			out.NormNames = append(out.NormNames, def.Name)
		} else {
			out.Set = append(out.Set, align.Value{Name: def.Name, Vector: blended})
		}
	}

	return out, nil
}
