package port

import "toonrec/internal/domain"

// Catalog is the immutable title→metadata mapping, loaded once at startup.
type Catalog interface {
	// Get returns the item for a canonical title.
	Get(title string) (domain.Item, bool)

	// Titles returns all canonical titles in lexicographic order.
	Titles() []string

	Len() int
}

// EmbeddingStore is the immutable title→vector mapping, loaded once at
// startup. Titles are co-indexed with the Catalog.
type EmbeddingStore interface {
	// Vector returns the stored embedding for a canonical title.
	Vector(title string) ([]float32, bool)

	// Titles returns all stored titles in lexicographic order.
	Titles() []string

	Count() int
}

// VectorRecord is one title→vector pair written during the offline
// embedding build.
type VectorRecord struct {
	Title  string
	Vector []float32
}

// EmbeddingSink receives vectors during the offline build or a data
// conversion; the read side of the store stays immutable at query time.
type EmbeddingSink interface {
	Upsert(records []VectorRecord) error
}
