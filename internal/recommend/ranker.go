package recommend

import (
	"fmt"
	"strings"

	"toonrec/internal/domain"
	"toonrec/internal/port"
)

// Ranker scores every stored candidate against a reference item's
// context vector and keeps the best one above the quality threshold.
type Ranker struct {
	catalog port.Catalog
	vectors port.EmbeddingStore
	encoder port.Encoder

	genreBoost   float64
	elementBoost float64
	threshold    float64
}

func NewRanker(catalog port.Catalog, vectors port.EmbeddingStore, enc port.Encoder, genreBoost, elementBoost, threshold float64) *Ranker {
	return &Ranker{
		catalog:      catalog,
		vectors:      vectors,
		encoder:      enc,
		genreBoost:   genreBoost,
		elementBoost: elementBoost,
		threshold:    threshold,
	}
}

// contextText composes the text encoded for the reference at query
// time: title, genres and story elements. This deliberately differs
// from IndexText (title, synopsis, genres), which built the stored
// vectors; the asymmetry is intentional.
func contextText(it domain.Item) string {
	parts := []string{it.Title}
	parts = append(parts, it.Genres...)
	parts = append(parts, it.Elements...)
	return strings.Join(parts, " ")
}

// Best returns the highest-scoring candidate for the reference, never
// the reference itself, anything in exclude, or an item of a different
// format. Ties on score go to the lexicographically smaller title.
func (r *Ranker) Best(ref domain.Reference, exclude map[string]struct{}) (string, float64, error) {
	refItem, ok := r.catalog.Get(ref.Title)
	if !ok {
		return "", 0, fmt.Errorf("reference %q not in catalog", ref.Title)
	}

	encoded, err := r.encoder.Encode([]string{contextText(refItem)})
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrEncoder, err)
	}
	if len(encoded) == 0 || len(encoded[0]) == 0 {
		return "", 0, fmt.Errorf("%w: empty context vector", ErrEncoder)
	}
	ctxVec := encoded[0]

	refFormat := domain.FormatOf(refItem)

	bestTitle := ""
	bestScore := 0.0
	// Titles() is sorted, so strict > keeps the lexicographically
	// smallest title on score ties.
	for _, title := range r.vectors.Titles() {
		if title == ref.Title {
			continue
		}
		if _, excluded := exclude[title]; excluded {
			continue
		}

		cand, ok := r.catalog.Get(title)
		if !ok {
			continue
		}
		if domain.FormatOf(cand) != refFormat {
			continue
		}

		vec, ok := r.vectors.Vector(title)
		if !ok {
			continue
		}

		base := dot(ctxVec, vec)

		var score float64
		if ref.Negative {
			score = 1 - base
		} else {
			score = base +
				r.genreBoost*float64(intersectCount(refItem.Genres, cand.Genres)) +
				r.elementBoost*float64(intersectCount(refItem.Elements, cand.Elements))
		}

		if score <= r.threshold {
			continue
		}
		if bestTitle == "" || score > bestScore {
			bestTitle, bestScore = title, score
		}
	}

	if bestTitle == "" {
		return "", 0, ErrNoMatch
	}
	return bestTitle, bestScore, nil
}

// SharedTags returns the genre and element overlap between two items,
// used for the "why this match" explanation.
func SharedTags(ref, cand domain.Item) domain.Overlap {
	return domain.Overlap{
		Genres:   intersect(ref.Genres, cand.Genres),
		Elements: intersect(ref.Elements, cand.Elements),
	}
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range b {
		if _, ok := set[s]; ok {
			out = append(out, s)
			delete(set, s)
		}
	}
	return out
}

func intersectCount(a, b []string) int {
	return len(intersect(a, b))
}
