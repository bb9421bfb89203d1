package recommend

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"toonrec/internal/adapter/matcher"
	"toonrec/internal/domain"
	"toonrec/internal/port"
)

// Default scoring constants, tuned against the production catalog.
const (
	DefaultGenreBoost   = 0.05
	DefaultElementBoost = 0.03
	DefaultThreshold    = 0.3
	DefaultFuzzyCutoff  = 0.6
)

// Engine is the recommendation facade: one long-lived instance per
// process, immutable after construction except for session state.
type Engine struct {
	catalog port.Catalog
	vectors port.EmbeddingStore
	encoder port.Encoder

	interp  *Interpreter
	ranker  *Ranker
	session *Session
	log     zerolog.Logger

	genreBoost   float64
	elementBoost float64
	threshold    float64
	fuzzyCutoff  float64
	seed         int64
}

type Option func(*Engine)

// WithSession replaces the engine-owned default session, e.g. to share
// anti-repeat state across several engine instances.
func WithSession(s *Session) Option {
	return func(e *Engine) { e.session = s }
}

// WithSeed fixes the pseudorandom source used to pick descriptive-query
// seeds, for deterministic tests. Zero keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithScoring overrides the boost weights and quality threshold.
func WithScoring(genreBoost, elementBoost, threshold float64) Option {
	return func(e *Engine) {
		e.genreBoost = genreBoost
		e.elementBoost = elementBoost
		e.threshold = threshold
	}
}

// WithFuzzyCutoff overrides the title-match similarity cutoff.
func WithFuzzyCutoff(cutoff float64) Option {
	return func(e *Engine) { e.fuzzyCutoff = cutoff }
}

// New wires the engine from its loaded collaborators after verifying
// that catalog and embedding store are co-indexed: a key-set mismatch
// means the offline build and the catalog are out of sync, and the
// process must not start.
func New(catalog port.Catalog, vectors port.EmbeddingStore, enc port.Encoder, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog:      catalog,
		vectors:      vectors,
		encoder:      enc,
		log:          zerolog.Nop(),
		genreBoost:   DefaultGenreBoost,
		elementBoost: DefaultElementBoost,
		threshold:    DefaultThreshold,
		fuzzyCutoff:  DefaultFuzzyCutoff,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := checkConsistency(catalog, vectors); err != nil {
		return nil, err
	}

	if e.session == nil {
		e.session = NewSession()
	}

	seed := e.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := matcher.New(catalog.Titles(), e.fuzzyCutoff)
	e.interp = NewInterpreter(catalog, m, rng)
	e.ranker = NewRanker(catalog, vectors, enc, e.genreBoost, e.elementBoost, e.threshold)

	e.log.Info().
		Int("items", catalog.Len()).
		Str("model", enc.ModelName()).
		Int("dimension", enc.Dimension()).
		Msg("recommendation engine ready")

	return e, nil
}

// checkConsistency verifies the catalog and the embedding store hold
// the same title set.
func checkConsistency(catalog port.Catalog, vectors port.EmbeddingStore) error {
	if catalog.Len() != vectors.Count() {
		return fmt.Errorf("catalog and embedding store disagree: %d items vs %d vectors",
			catalog.Len(), vectors.Count())
	}
	for _, title := range catalog.Titles() {
		if _, ok := vectors.Vector(title); !ok {
			return fmt.Errorf("catalog item %q has no stored vector", title)
		}
	}
	return nil
}

// Session returns the engine-owned default session.
func (e *Engine) Session() *Session {
	return e.session
}

// Result carries a recommendation together with the reference the
// query resolved to and their tag overlap, for callers that explain
// the match.
type Result struct {
	Recommendation *domain.Recommendation
	Reference      domain.Reference
	Overlap        domain.Overlap
}

// Recommend resolves the query and returns the single best match,
// recording it in the default session.
func (e *Engine) Recommend(query string) (*domain.Recommendation, error) {
	res, err := e.RecommendDetailed(e.session, query)
	if err != nil {
		return nil, err
	}
	return res.Recommendation, nil
}

// RecommendFor is Recommend against a caller-supplied session, for
// hosts that shard anti-repeat state per user or connection.
func (e *Engine) RecommendFor(sess *Session, query string) (*domain.Recommendation, error) {
	res, err := e.RecommendDetailed(sess, query)
	if err != nil {
		return nil, err
	}
	return res.Recommendation, nil
}

// RecommendDetailed runs the full pipeline against the given session.
// The session is only mutated after scoring fully succeeds.
func (e *Engine) RecommendDetailed(sess *Session, query string) (*Result, error) {
	ref, err := e.interp.Resolve(query)
	if err != nil {
		return nil, err
	}

	title, score, err := e.ranker.Best(ref, sess.Snapshot())
	if err != nil {
		return nil, err
	}

	sess.Add(title)

	e.log.Debug().
		Str("reference", ref.Title).
		Bool("negative", ref.Negative).
		Str("winner", title).
		Float64("score", score).
		Msg("recommendation")

	return &Result{
		Recommendation: e.recommendation(title, score),
		Reference:      ref,
		Overlap:        e.Explain(ref.Title, title),
	}, nil
}

// Explain returns the tag overlap between the query's reference item
// and a recommended title.
func (e *Engine) Explain(reference, recommended string) domain.Overlap {
	ref, ok := e.catalog.Get(reference)
	if !ok {
		return domain.Overlap{}
	}
	cand, ok := e.catalog.Get(recommended)
	if !ok {
		return domain.Overlap{}
	}
	return SharedTags(ref, cand)
}

// TopSimilar encodes the raw query text and returns the k items whose
// stored vectors score highest by dot product. No heuristics and no
// session interaction, just the plain nearest-neighbor lookup.
func (e *Engine) TopSimilar(query string, k int) ([]domain.Recommendation, error) {
	if k <= 0 {
		k = 5
	}

	encoded, err := e.encoder.Encode([]string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoder, err)
	}
	if len(encoded) == 0 || len(encoded[0]) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", ErrEncoder)
	}
	queryVec := encoded[0]

	titles := e.vectors.Titles()
	scored := make([]domain.Recommendation, 0, len(titles))
	for _, title := range titles {
		vec, ok := e.vectors.Vector(title)
		if !ok {
			continue
		}
		scored = append(scored, *e.recommendation(title, dot(queryVec, vec)))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func (e *Engine) recommendation(title string, score float64) *domain.Recommendation {
	it, _ := e.catalog.Get(title)
	return &domain.Recommendation{
		Title:    title,
		Score:    score,
		Format:   domain.FormatOf(it),
		Genres:   it.Genres,
		Elements: it.Elements,
		ImageURL: it.ImageURL,
		Synopsis: it.Synopsis,
	}
}
