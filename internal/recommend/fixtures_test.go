package recommend

import (
	"errors"

	"toonrec/internal/adapter/catalog"
	"toonrec/internal/adapter/memstore"
	"toonrec/internal/domain"
	"toonrec/internal/port"
)

// stubEncoder returns canned vectors keyed by exact input text, so
// tests control every dot product. Unknown texts get the zero vector.
type stubEncoder struct {
	vectors map[string][]float32
	dim     int
	fail    bool
}

func (s *stubEncoder) Encode(texts []string) ([][]float32, error) {
	if s.fail {
		return nil, errors.New("stub encoder down")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = make([]float32, s.dim)
		}
	}
	return out, nil
}

func (s *stubEncoder) Dimension() int    { return s.dim }
func (s *stubEncoder) ModelName() string { return "stub" }

var fixtureItems = []domain.Item{
	{
		Title:    "Solo Leveling",
		Type:     "Manhwa",
		Genres:   []string{"Action", "Fantasy"},
		Elements: []string{"Leveling", "Dungeons"},
		ImageURL: "https://example.com/solo.jpg",
		Synopsis: "The weakest hunter becomes the strongest.",
	},
	{
		Title:    "Tower of God",
		Type:     "Manhwa",
		Genres:   []string{"Action", "Fantasy"},
		Elements: []string{"Tower", "Games"},
		ImageURL: "https://example.com/tog.jpg",
		Synopsis: "A boy climbs a mysterious tower.",
	},
	{
		Title:    "The Beginning After The End",
		Type:     "Manhwa",
		Genres:   []string{"Action", "Fantasy"},
		Elements: []string{"Reincarnation"},
		ImageURL: "https://example.com/tbate.jpg",
		Synopsis: "A king is reborn in a world of magic.",
	},
	{
		Title:    "True Beauty",
		Type:     "Manhwa",
		Genres:   []string{"Romance", "Comedy"},
		Elements: []string{"School Life"},
		ImageURL: "https://example.com/tb.jpg",
		Synopsis: "A girl's life changes with makeup.",
	},
	{
		Title:    "Berserk",
		Type:     "Manga",
		Genres:   []string{"Action", "Dark Fantasy"},
		Elements: []string{"Revenge"},
		ImageURL: "https://example.com/berserk.jpg",
		Synopsis: "A lone mercenary battles fate.",
	},
}

// fixtureStores builds the co-indexed catalog and vector store. Stored
// vectors are along the first axis so the context vector [1,0,0] gives
// readable dot products.
func fixtureStores() (*catalog.Catalog, *memstore.Vectors) {
	cat := catalog.FromItems(fixtureItems)

	vecs := memstore.NewVectors()
	vecs.Upsert([]port.VectorRecord{
		{Title: "Solo Leveling", Vector: []float32{1, 0, 0}},
		{Title: "Tower of God", Vector: []float32{0.8, 0, 0}},
		{Title: "The Beginning After The End", Vector: []float32{0.5, 0, 0}},
		{Title: "True Beauty", Vector: []float32{0.1, 0, 0}},
		{Title: "Berserk", Vector: []float32{0.9, 0, 0}},
	})
	return cat, vecs
}

// fixtureEncoder maps the query-time context texts of the fixture
// items onto unit vectors.
func fixtureEncoder() *stubEncoder {
	enc := &stubEncoder{dim: 3, vectors: map[string][]float32{}}
	for _, it := range fixtureItems {
		enc.vectors[contextText(it)] = []float32{1, 0, 0}
	}
	return enc
}
