package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"toonrec/internal/port"
)

func TestUpsertAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetInfo(Info{Model: "all-minilm", Dimension: 3}); err != nil {
		t.Fatal(err)
	}

	records := []port.VectorRecord{
		{Title: "Tower of God", Vector: []float32{0.1, 0.2, 0.3}},
		{Title: "Eleceed", Vector: []float32{0.4, 0.5, 0.6}},
		{Title: "Solo Leveling", Vector: []float32{0.7, 0.8, 0.9}},
	}
	if err := s.Upsert(records); err != nil {
		t.Fatal(err)
	}

	wantTitles := []string{"Eleceed", "Solo Leveling", "Tower of God"}
	if !reflect.DeepEqual(s.Titles(), wantTitles) {
		t.Errorf("Titles = %v, want %v (sorted)", s.Titles(), wantTitles)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// A fresh open must yield the identical title set and vectors.
	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if reopened.Count() != 3 {
		t.Fatalf("Count = %d, want 3", reopened.Count())
	}
	if !reflect.DeepEqual(reopened.Titles(), wantTitles) {
		t.Errorf("Titles after reload = %v, want %v", reopened.Titles(), wantTitles)
	}
	for _, rec := range records {
		vec, ok := reopened.Vector(rec.Title)
		if !ok {
			t.Fatalf("vector for %q missing after reload", rec.Title)
		}
		if !reflect.DeepEqual(vec, rec.Vector) {
			t.Errorf("vector for %q = %v, want %v", rec.Title, vec, rec.Vector)
		}
	}

	info := reopened.Info()
	if info.Model != "all-minilm" || info.Dimension != 3 {
		t.Errorf("Info = %+v, want model all-minilm dim 3", info)
	}
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "vectors.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.SetInfo(Info{Model: "all-minilm", Dimension: 3}); err != nil {
		t.Fatal(err)
	}

	err = s.Upsert([]port.VectorRecord{{Title: "Bad", Vector: []float32{1, 2}}})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	if _, ok := s.Vector("Bad"); ok {
		t.Error("mismatched vector must not be stored")
	}
}

func TestUpsertOverwrite(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "vectors.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	first := []port.VectorRecord{{Title: "Eleceed", Vector: []float32{1, 0}}}
	second := []port.VectorRecord{{Title: "Eleceed", Vector: []float32{0, 1}}}
	if err := s.Upsert(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(second); err != nil {
		t.Fatal(err)
	}

	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1 after overwrite", s.Count())
	}
	vec, _ := s.Vector("Eleceed")
	if !reflect.DeepEqual(vec, []float32{0, 1}) {
		t.Errorf("vector = %v, want overwritten value", vec)
	}
}
