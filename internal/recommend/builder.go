package recommend

import (
	"fmt"
	"strings"

	"toonrec/internal/domain"
	"toonrec/internal/port"
)

// IndexText composes the text embedded for an item during the offline
// build: title, synopsis, then genre tags. See contextText for the
// differing query-time composition.
func IndexText(it domain.Item) string {
	parts := []string{it.Title, it.Synopsis}
	parts = append(parts, it.Genres...)
	return strings.Join(parts, " ")
}

// BuildResult summarizes an offline embedding build.
type BuildResult struct {
	ItemsEncoded int
	Dimension    int
}

// BuildEmbeddings encodes every catalog item and writes the vectors to
// the sink in batches. progress, when non-nil, is called after each
// batch with (done, total).
func BuildEmbeddings(catalog port.Catalog, enc port.Encoder, sink port.EmbeddingSink, batchSize int, progress func(done, total int)) (*BuildResult, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	titles := catalog.Titles()
	total := len(titles)

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		batch := titles[start:end]

		texts := make([]string, len(batch))
		for i, title := range batch {
			it, ok := catalog.Get(title)
			if !ok {
				return nil, fmt.Errorf("catalog item %q disappeared during build", title)
			}
			texts[i] = IndexText(it)
		}

		vectors, err := enc.Encode(texts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode batch at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("encoder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		records := make([]port.VectorRecord, len(batch))
		for i, title := range batch {
			records[i] = port.VectorRecord{Title: title, Vector: vectors[i]}
		}
		if err := sink.Upsert(records); err != nil {
			return nil, fmt.Errorf("failed to store batch at %d: %w", start, err)
		}

		if progress != nil {
			progress(end, total)
		}
	}

	return &BuildResult{ItemsEncoded: total, Dimension: enc.Dimension()}, nil
}
