package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"toonrec/config"
	"toonrec/internal/adapter/catalog"
	"toonrec/internal/adapter/store"
	"toonrec/internal/recommend"
)

// buildEngine loads the catalog, the embedding store and the encoder,
// and constructs the engine. Any failure here is fatal to the command:
// a half-loaded engine must never serve requests.
func buildEngine(cfg *config.Config, log zerolog.Logger) (*recommend.Engine, *store.BoltStore, error) {
	cat, err := catalog.Load(cfg.Data.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	st, err := store.Open(cfg.Data.EmbeddingsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedding store: %w", err)
	}

	enc, err := newEncoder(cfg)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	if info := st.Info(); info.Model != "" && info.Model != enc.ModelName() {
		st.Close()
		return nil, nil, fmt.Errorf("embedding store was built with model %q but encoder is %q; rerun 'toonrec index'",
			info.Model, enc.ModelName())
	}

	engine, err := recommend.New(cat, st, enc,
		recommend.WithLogger(log),
		recommend.WithSeed(cfg.Scoring.Seed),
		recommend.WithScoring(cfg.Scoring.GenreBoost, cfg.Scoring.ElementBoost, cfg.Scoring.Threshold),
		recommend.WithFuzzyCutoff(cfg.Scoring.FuzzyCutoff),
	)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to build engine: %w", err)
	}

	return engine, st, nil
}
