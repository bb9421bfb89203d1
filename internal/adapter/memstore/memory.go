package memstore

import (
	"sort"
	"sync"

	"toonrec/internal/port"
)

// Vectors is an in-memory EmbeddingStore and EmbeddingSink. It backs
// tests and ad-hoc tooling where the BoltDB store would be overkill.
type Vectors struct {
	mu      sync.RWMutex
	vectors map[string][]float32
}

func NewVectors() *Vectors {
	return &Vectors{vectors: make(map[string][]float32)}
}

func (v *Vectors) Upsert(records []port.VectorRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, rec := range records {
		v.vectors[rec.Title] = rec.Vector
	}
	return nil
}

func (v *Vectors) Vector(title string) ([]float32, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	vec, ok := v.vectors[title]
	return vec, ok
}

func (v *Vectors) Titles() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	titles := make([]string, 0, len(v.vectors))
	for title := range v.vectors {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

func (v *Vectors) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.vectors)
}
