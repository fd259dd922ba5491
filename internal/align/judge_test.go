package align

import (
	"errors"
	"testing"
)

func testSet() ValueSet {
	return ValueSet{
		{Name: "kindness", Vector: []float32{1, 0}},
		{Name: "honesty", Vector: []float32{0, 1}},
		{Name: "autonomy", Vector: []float32{-1, 0}},
	}
}

func TestNewJudge_DimensionMismatch(t *testing.T) {
	set := ValueSet{
		{Name: "kindness", Vector: []float32{1, 0}},
		{Name: "honesty", Vector: []float32{1, 0, 0}},
	}

	_, err := NewJudge(set)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("NewJudge() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestNewJudge_EmptySet(t *testing.T) {
	j, err := NewJudge(ValueSet{})
	if err != nil {
		t.Fatalf("NewJudge(empty) error = %v", err)
	}
	if j.Dimensions() != 0 {
		t.Errorf("Dimensions() = %d, want 0", j.Dimensions())
	}
}

func TestJudge_Judge(t *testing.T) {
	j, err := NewJudge(testSet())
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	result := j.Judge([]float32{1, 0})

	expected := map[string]float32{
		"kindness": 1.0,
		"honesty":  0.5,
		"autonomy": 0.0,
	}
	if len(result) != len(expected) {
		t.Fatalf("Judge() returned %d scores, want %d", len(result), len(expected))
	}
	for name, want := range expected {
		if got := result[name]; !almostEqual(got, want) {
			t.Errorf("Judge()[%q] = %v, want %v", name, got, want)
		}
	}
}

func TestJudge_FreshResultPerCall(t *testing.T) {
	j, err := NewJudge(testSet())
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	first := j.Judge([]float32{1, 0})
	first["kindness"] = -99

	second := j.Judge([]float32{1, 0})
	if !almostEqual(second["kindness"], 1.0) {
		t.Errorf("second Judge() polluted by first: kindness = %v", second["kindness"])
	}
}

func TestJudge_IsAcceptable(t *testing.T) {
	tests := []struct {
		name      string
		set       ValueSet
		action    []float32
		threshold float32
		expected  bool
	}{
		{
			name: "all values pass",
			set: ValueSet{
				{Name: "kindness", Vector: []float32{1, 0}},
				{Name: "honesty", Vector: []float32{1, 1}},
			},
			action:    []float32{1, 0.5},
			threshold: 0.3,
			expected:  true,
		},
		{
			name: "one value vetoes",
			set: ValueSet{
				{Name: "kindness", Vector: []float32{1, 0}},
				{Name: "honesty", Vector: []float32{-1, 0}},
			},
			action:    []float32{1, 0},
			threshold: 0.3,
			expected:  false,
		},
		{
			name:      "empty set passes vacuously",
			set:       ValueSet{},
			action:    []float32{1, 0},
			threshold: 0.9,
			expected:  true,
		},
		{
			name: "score exactly at threshold passes",
			set: ValueSet{
				{Name: "honesty", Vector: []float32{0, 1}},
			},
			action:    []float32{1, 0}, // orthogonal, score 0.5
			threshold: 0.5,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, err := NewJudge(tt.set)
			if err != nil {
				t.Fatalf("NewJudge() error = %v", err)
			}

			ok, result := j.IsAcceptable(tt.action, tt.threshold)
			if ok != tt.expected {
				t.Errorf("IsAcceptable() = %v, want %v (judgment: %v)", ok, tt.expected, result)
			}
			if len(result) != len(tt.set) {
				t.Errorf("IsAcceptable() judgment has %d entries, want %d", len(result), len(tt.set))
			}
		})
	}
}

func TestJudge_IsAcceptableMatchesMinScore(t *testing.T) {
	j, err := NewJudge(testSet())
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	actions := [][]float32{
		{1, 0},
		{0, 1},
		{-1, -1},
		{0.5, 0.5},
	}

	for _, action := range actions {
		for _, threshold := range []float32{0.0, 0.3, 0.5, 0.9} {
			ok, result := j.IsAcceptable(action, threshold)
			want := result.Min() >= threshold
			if ok != want {
				t.Errorf("IsAcceptable(%v, %v) = %v, want %v (min score %v)",
					action, threshold, ok, want, result.Min())
			}
		}
	}
}

func TestJudge_ViolationsConsistency(t *testing.T) {
	// An action is acceptable exactly when it has no violations at the
	// same threshold.
	set := testSet()
	j, err := NewJudge(set)
	if err != nil {
		t.Fatalf("NewJudge() error = %v", err)
	}

	action := []float32{0.7, 0.7}
	threshold := float32(0.4)

	ok, _ := j.IsAcceptable(action, threshold)
	violations := Violations(action, set, threshold)

	if ok != (len(violations) == 0) {
		t.Errorf("IsAcceptable = %v but Violations = %v", ok, violations)
	}
}
