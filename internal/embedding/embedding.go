// Package embedding turns text into vectors via an external encoder.
//
// The alignment engine itself never computes embeddings; everything here
// exists so the CLI can hand it vectors of a consistent dimensionality.
package embedding

import (
	"context"
	"fmt"
)

// Embedding is a vector produced by an encoder model.
type Embedding struct {
	Vector []float32 // e.g. 384 dimensions for all-minilm
}

// Dimensions returns the dimensionality of the embedding.
func (e Embedding) Dimensions() int {
	return len(e.Vector)
}

// Provider generates embeddings from text.
type Provider interface {
	// Embed generates an embedding for the given text.
	Embed(ctx context.Context, text string) (Embedding, error)

	// ModelName returns the name of the embedding model.
	ModelName() string

	// Dimensions returns the expected vector dimensions.
	Dimensions() int
}

// EmbedAll embeds each text in order using the provider. It stops at the
// first failure, returning the index of the text that failed in the error.
func EmbedAll(ctx context.Context, p Provider, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		emb, err := p.Embed(ctx, text)
		if err != nil {
			return nil, &BatchError{Index: i, Text: text, Err: err}
		}
		vectors = append(vectors, emb.Vector)
	}
	return vectors, nil
}

// BatchError reports which text in a batch failed to embed.
type BatchError struct {
	Index int
	Text  string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("embedding text %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
