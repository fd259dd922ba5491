// Package align scores directional agreement between embedding vectors.
//
// Every score is cosine similarity remapped from [-1, 1] to [0, 1] via
// (s+1)/2, with epsilon-guarded normalization: an all-zero vector
// normalizes to the zero vector rather than dividing by zero, so it
// scores 0.5 against anything. Callers should treat scores involving
// degenerate vectors as low-confidence.
//
// All operations are pure functions of their inputs. Judge and Promoter
// hold read-only reference sets fixed at construction, so they are safe
// for concurrent use.
package align

import "errors"

const (
	// Epsilon pads normalization denominators to avoid division by zero
	// on zero-magnitude vectors.
	Epsilon = 1e-8

	// DefaultThreshold is the acceptance threshold used when callers do
	// not supply one.
	DefaultThreshold = 0.3

	// DefaultAlpha is the default interpolation factor for
	// SuggestImprovement.
	DefaultAlpha = 0.2
)

// Errors returned by alignment operations.
var (
	ErrUnsupportedPolicy = errors.New("unsupported aggregation policy")
	ErrEmptyValueSet     = errors.New("empty value set")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Policy selects how per-value scores combine into a single aggregate.
type Policy string

const (
	PolicyMean Policy = "mean" // arithmetic mean
	PolicyMin  Policy = "min"  // worst case, conservative
	PolicyMax  Policy = "max"  // best case, optimistic
)

// Valid reports whether the policy is one of the recognized aggregation
// policies.
func (p Policy) Valid() bool {
	switch p {
	case PolicyMean, PolicyMin, PolicyMax:
		return true
	}
	return false
}

// Value pairs a name with its reference vector.
type Value struct {
	Name   string
	Vector []float32
}

// ValueSet is an ordered collection of named reference vectors. Order is
// preserved through judgment and violation reporting.
type ValueSet []Value

// Names returns the value names in set order.
func (s ValueSet) Names() []string {
	names := make([]string, len(s))
	for i, v := range s {
		names[i] = v.Name
	}
	return names
}

// Judgment maps value names to alignment scores in [0, 1].
type Judgment map[string]float32

// Min returns the lowest score in the judgment, or 0 if it is empty.
func (j Judgment) Min() float32 {
	first := true
	var min float32
	for _, score := range j {
		if first || score < min {
			min = score
			first = false
		}
	}
	return min
}
