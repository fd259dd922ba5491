package values

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/umaja/valign/internal/embedding"
)

// stubProvider returns a fixed vector per text, no network involved.
type stubProvider struct {
	vectors map[string][]float32
}

func (s *stubProvider) Embed(_ context.Context, text string) (embedding.Embedding, error) {
	v, ok := s.vectors[text]
	if !ok {
		v = []float32{1, 0}
	}
	return embedding.Embedding{Vector: v}, nil
}

func (s *stubProvider) ModelName() string { return "stub-model" }
func (s *stubProvider) Dimensions() int   { return 2 }

func writeValuesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing values file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeValuesFile(t, `
values:
  - name: kindness
    phrases:
      - text: be kind to others
      - text: show compassion
        weight: 2
  - name: curiosity
    kind: norm
    phrases:
      - text: explore new ideas
`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if len(f.Values) != 2 {
		t.Fatalf("got %d values, want 2", len(f.Values))
	}
	if f.Values[0].Kind != KindValue {
		t.Errorf("default kind = %q, want %q", f.Values[0].Kind, KindValue)
	}
	if f.Values[1].Kind != KindNorm {
		t.Errorf("kind = %q, want %q", f.Values[1].Kind, KindNorm)
	}
	if f.Values[0].Phrases[1].Weight != 2 {
		t.Errorf("weight = %v, want 2", f.Values[0].Phrases[1].Weight)
	}
}

func TestLoadFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty file",
			content: "values: []",
			wantErr: "at least one value",
		},
		{
			name: "missing name",
			content: `
values:
  - phrases:
      - text: something
`,
			wantErr: "must have a name",
		},
		{
			name: "duplicate name",
			content: `
values:
  - name: kindness
    phrases: [{text: a}]
  - name: kindness
    phrases: [{text: b}]
`,
			wantErr: "duplicate value name",
		},
		{
			name: "bad kind",
			content: `
values:
  - name: kindness
    kind: virtue
    phrases: [{text: a}]
`,
			wantErr: "invalid kind",
		},
		{
			name: "no phrases",
			content: `
values:
  - name: kindness
    phrases: []
`,
			wantErr: "at least one phrase",
		},
		{
			name: "empty phrase text",
			content: `
values:
  - name: kindness
    phrases: [{text: ""}]
`,
			wantErr: "empty text",
		},
		{
			name: "negative weight",
			content: `
values:
  - name: kindness
    phrases: [{text: a, weight: -1}]
`,
			wantErr: "negative weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeValuesFile(t, tt.content)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	if err == nil {
		t.Fatal("LoadFile() expected error for missing file, got nil")
	}
}

func TestCompile(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{
		"be kind":   {1, 0},
		"be honest": {0, 1},
		"explore":   {0, 2},
	}}

	f := &File{Values: []Definition{
		{Name: "kindness", Kind: KindValue, Phrases: []Phrase{{Text: "be kind"}}},
		{Name: "honesty", Kind: KindValue, Phrases: []Phrase{{Text: "be honest"}}},
		{Name: "curiosity", Kind: KindNorm, Phrases: []Phrase{{Text: "explore"}}},
	}}

	compiled, err := Compile(context.Background(), provider, f)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if compiled.Model != "stub-model" {
		t.Errorf("Model = %q, want stub-model", compiled.Model)
	}
	if len(compiled.Set) != 2 {
		t.Fatalf("got %d gating values, want 2", len(compiled.Set))
	}
	if compiled.Set[0].Name != "kindness" || compiled.Set[1].Name != "honesty" {
		t.Errorf("set order = %v, want file order", compiled.Set.Names())
	}
	if len(compiled.Norms) != 1 || compiled.NormNames[0] != "curiosity" {
		t.Errorf("norms = %v, want [curiosity]", compiled.NormNames)
	}

	// Compiled vectors are blended to unit length.
	for _, v := range compiled.Set {
		var sum float64
		for _, x := range v.Vector {
			sum += float64(x) * float64(x)
		}
		if math.Abs(math.Sqrt(sum)-1) > 0.0001 {
			t.Errorf("value %q vector magnitude = %v, want 1", v.Name, math.Sqrt(sum))
		}
	}
}

func TestCompile_BlendsWeightedPhrases(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
	}}

	f := &File{Values: []Definition{
		{Name: "blend", Kind: KindValue, Phrases: []Phrase{
			{Text: "a", Weight: 3},
			{Text: "b", Weight: 1},
		}},
	}}

	compiled, err := Compile(context.Background(), provider, f)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	v := compiled.Set[0].Vector
	if v[0] <= v[1] {
		t.Errorf("blend = %v, want first component dominant (weight 3 vs 1)", v)
	}
}
