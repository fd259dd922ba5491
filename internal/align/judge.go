package align

import "fmt"

// Judge scores actions against a fixed set of named values. The set is
// read-only after construction.
type Judge struct {
	set  ValueSet
	dims int
}

// NewJudge builds a Judge over the given value set. Every value vector
// must share one dimensionality; mismatches are caught here rather than
// surfacing as nonsense scores at judgment time.
func NewJudge(set ValueSet) (*Judge, error) {
	j := &Judge{set: set}
	for _, v := range set {
		if j.dims == 0 {
			j.dims = len(v.Vector)
		}
		if len(v.Vector) != j.dims {
			return nil, fmt.Errorf("%w: value %q has %d dimensions, want %d",
				ErrDimensionMismatch, v.Name, len(v.Vector), j.dims)
		}
	}
	return j, nil
}

// Values returns the value set the Judge was constructed with.
func (j *Judge) Values() ValueSet {
	return j.set
}

// Dimensions returns the dimensionality of the value set, or 0 for an
// empty set.
func (j *Judge) Dimensions() int {
	return j.dims
}

// Judge scores the action against every value and returns the full
// per-value map, fresh on each call.
func (j *Judge) Judge(action []float32) Judgment {
	result := make(Judgment, len(j.set))
	for _, v := range j.set {
		result[v.Name] = Score(action, v.Vector)
	}
	return result
}

// IsAcceptable applies a conjunctive gate: the action passes only when
// every value scores at least minThreshold. The full judgment is returned
// either way so callers can see which value failed, not just that one did.
func (j *Judge) IsAcceptable(action []float32, minThreshold float32) (bool, Judgment) {
	result := j.Judge(action)
	for _, score := range result {
		if score < minThreshold {
			return false, result
		}
	}
	return true, result
}
