package align

import (
	"fmt"
	"math"
)

// Normalize returns v scaled to unit length. The denominator is padded by
// Epsilon, so an all-zero vector comes back all-zero. The input is not
// modified.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := float32(math.Sqrt(sum)) + Epsilon

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// cosine computes epsilon-guarded cosine similarity between two vectors.
// Mismatched or zero-length inputs yield 0 (no directional information).
func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := (math.Sqrt(normA) + Epsilon) * (math.Sqrt(normB) + Epsilon)
	return float32(dot / denom)
}

// Score computes the alignment between two vectors: cosine similarity
// remapped to [0, 1], where 1 means identical direction, 0.5 orthogonal,
// and 0 exactly opposite.
func Score(a, b []float32) float32 {
	return (cosine(a, b) + 1) / 2
}

// Aggregate scores action against every value vector and combines the
// per-value scores under the given policy. An empty value list yields 0:
// with nothing to satisfy there is no confirmed alignment.
func Aggregate(action []float32, values [][]float32, policy Policy) (float32, error) {
	if !policy.Valid() {
		return 0, fmt.Errorf("%w: %q (valid: mean, min, max)", ErrUnsupportedPolicy, policy)
	}
	if len(values) == 0 {
		return 0, nil
	}

	scores := make([]float32, len(values))
	for i, v := range values {
		scores[i] = Score(action, v)
	}

	switch policy {
	case PolicyMin:
		min := scores[0]
		for _, s := range scores[1:] {
			if s < min {
				min = s
			}
		}
		return min, nil
	case PolicyMax:
		max := scores[0]
		for _, s := range scores[1:] {
			if s > max {
				max = s
			}
		}
		return max, nil
	default: // PolicyMean
		var sum float32
		for _, s := range scores {
			sum += s
		}
		return sum / float32(len(scores)), nil
	}
}

// Violations reports the names of values whose alignment with action falls
// strictly below threshold, in set order. Each value is scored
// independently: a single badly violated value must never be masked by
// averaging against well-aligned ones.
func Violations(action []float32, set ValueSet, threshold float32) []string {
	violations := []string{}
	for _, v := range set {
		if Score(action, v.Vector) < threshold {
			violations = append(violations, v.Name)
		}
	}
	return violations
}

// Balance blends value vectors into a single unit-length reference
// direction. Nil weights default to uniform; weights are normalized to sum
// to 1 and the weighted sum runs over the raw (unnormalized) inputs.
func Balance(values [][]float32, weights []float32) ([]float32, error) {
	if len(values) == 0 {
		return nil, ErrEmptyValueSet
	}

	dims := len(values[0])
	for i, v := range values {
		if len(v) != dims {
			return nil, fmt.Errorf("%w: value %d has %d dimensions, want %d", ErrDimensionMismatch, i, len(v), dims)
		}
	}

	if weights == nil {
		weights = make([]float32, len(values))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(values) {
		return nil, fmt.Errorf("got %d weights for %d values", len(weights), len(values))
	}

	var total float64
	for _, w := range weights {
		total += float64(w)
	}
	total += Epsilon

	blended := make([]float32, dims)
	for i, v := range values {
		w := float32(float64(weights[i]) / total)
		for j, x := range v {
			blended[j] += w * x
		}
	}

	return Normalize(blended), nil
}
