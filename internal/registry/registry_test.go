package registry

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "vectors.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testEntries() []Entry {
	return []Entry{
		{Name: "kindness", Kind: "value", Vector: []float32{1, 0, 0}},
		{Name: "honesty", Kind: "value", Vector: []float32{0, 1, 0}},
		{Name: "curiosity", Kind: "norm", Vector: []float32{0, 0, 1}},
	}
}

func testMeta() Meta {
	return Meta{Model: "all-minilm:l6-v2", Dimensions: 3, CompiledAt: time.Now().UTC().Truncate(time.Second)}
}

func TestReplaceAndEntries(t *testing.T) {
	db := openTestDB(t)

	if err := db.Replace(testEntries(), testMeta()); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	entries, err := db.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Compile order survives the round trip.
	wantNames := []string{"kindness", "honesty", "curiosity"}
	for i, entry := range entries {
		if entry.Name != wantNames[i] {
			t.Errorf("entry %d = %q, want %q", i, entry.Name, wantNames[i])
		}
	}

	if entries[2].Kind != "norm" {
		t.Errorf("kind = %q, want norm", entries[2].Kind)
	}

	want := []float32{1, 0, 0}
	for i, x := range entries[0].Vector {
		if x != want[i] {
			t.Errorf("vector[%d] = %v, want %v", i, x, want[i])
		}
	}
}

func TestReplace_Overwrites(t *testing.T) {
	db := openTestDB(t)

	if err := db.Replace(testEntries(), testMeta()); err != nil {
		t.Fatalf("first Replace() error = %v", err)
	}

	replacement := []Entry{{Name: "patience", Kind: "value", Vector: []float32{1, 1, 1}}}
	if err := db.Replace(replacement, testMeta()); err != nil {
		t.Fatalf("second Replace() error = %v", err)
	}

	entries, err := db.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "patience" {
		t.Errorf("entries = %v, want only patience", entries)
	}
}

func TestEntries_Empty(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Entries()
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Entries() error = %v, want ErrEmpty", err)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Meta()
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Meta() on empty registry: error = %v, want ErrEmpty", err)
	}

	meta := testMeta()
	if err := db.Replace(testEntries(), meta); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := db.Meta()
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if got.Model != meta.Model {
		t.Errorf("Model = %q, want %q", got.Model, meta.Model)
	}
	if got.Dimensions != meta.Dimensions {
		t.Errorf("Dimensions = %d, want %d", got.Dimensions, meta.Dimensions)
	}
	if !got.CompiledAt.Equal(meta.CompiledAt) {
		t.Errorf("CompiledAt = %v, want %v", got.CompiledAt, meta.CompiledAt)
	}
}

func TestVerifyModel(t *testing.T) {
	db := openTestDB(t)

	if err := db.Replace(testEntries(), testMeta()); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	if err := db.VerifyModel("all-minilm:l6-v2", 3); err != nil {
		t.Errorf("VerifyModel() with matching model: error = %v", err)
	}

	if err := db.VerifyModel("nomic-embed-text", 3); !errors.Is(err, ErrModelMismatch) {
		t.Errorf("VerifyModel() wrong model: error = %v, want ErrModelMismatch", err)
	}

	if err := db.VerifyModel("all-minilm:l6-v2", 768); !errors.Is(err, ErrModelMismatch) {
		t.Errorf("VerifyModel() wrong dimensions: error = %v, want ErrModelMismatch", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	// Negative, fractional, and extreme components must survive the blob
	// encoding exactly.
	db := openTestDB(t)

	vector := []float32{-1.5, 0.00001, 3.4e38, -0}
	entries := []Entry{{Name: "edge", Kind: "value", Vector: vector}}
	meta := Meta{Model: "m", Dimensions: 4, CompiledAt: time.Now()}

	if err := db.Replace(entries, meta); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := db.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	for i, x := range got[0].Vector {
		if x != vector[i] {
			t.Errorf("vector[%d] = %v, want %v", i, x, vector[i])
		}
	}
}
