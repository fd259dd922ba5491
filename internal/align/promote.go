package align

import "fmt"

// Promoter scores and nudges actions toward a set of promoted behavioral
// norms. Unlike a Judge's values, norms are unnamed: promotion is an
// encouragement signal rather than a per-value gate.
type Promoter struct {
	norms    [][]float32
	centroid []float32 // unit-length elementwise mean of the norms
}

// NewPromoter builds a Promoter over a non-empty list of norm vectors of
// identical dimensionality. The normalized centroid is precomputed since
// every suggestion interpolates toward it.
func NewPromoter(norms [][]float32) (*Promoter, error) {
	if len(norms) == 0 {
		return nil, ErrEmptyValueSet
	}

	dims := len(norms[0])
	for i, n := range norms {
		if len(n) != dims {
			return nil, fmt.Errorf("%w: norm %d has %d dimensions, want %d",
				ErrDimensionMismatch, i, len(n), dims)
		}
	}

	mean := make([]float32, dims)
	for _, n := range norms {
		for j, x := range n {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= float32(len(norms))
	}

	return &Promoter{norms: norms, centroid: Normalize(mean)}, nil
}

// Dimensions returns the dimensionality of the promoted norms.
func (p *Promoter) Dimensions() int {
	return len(p.centroid)
}

// EvaluateAction returns the arithmetic mean of the action's alignment
// with each promoted norm. Partial credit is deliberate here: promotion
// measures encouragement, so a worst-case policy would be the wrong tool.
func (p *Promoter) EvaluateAction(action []float32) float32 {
	var sum float32
	for _, n := range p.norms {
		sum += Score(action, n)
	}
	return sum / float32(len(p.norms))
}

// SuggestImprovement interpolates the action toward the norm centroid by
// alpha and re-normalizes to unit length: alpha=0 keeps the action's
// direction, alpha=1 lands exactly on the centroid. This is a single
// heuristic step, not an optimizer. The action must match the promoter's
// dimensionality.
func (p *Promoter) SuggestImprovement(action []float32, alpha float32) []float32 {
	out := make([]float32, len(p.centroid))
	for i := range out {
		out[i] = (1-alpha)*action[i] + alpha*p.centroid[i]
	}
	return Normalize(out)
}
