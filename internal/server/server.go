package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"toonrec/internal/domain"
	"toonrec/internal/recommend"
)

// Server is the thin HTTP wrapper around the recommendation engine.
// Every engine error is converted into a structured error payload;
// nothing propagates past the handlers.
type Server struct {
	engine *recommend.Engine
	log    zerolog.Logger
	topK   int
}

type Option func(*Server)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithTopK sets the default result count for /similar.
func WithTopK(k int) Option {
	return func(s *Server) { s.topK = k }
}

func New(engine *recommend.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		log:    zerolog.Nop(),
		topK:   5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type queryRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

type recommendResponse struct {
	Status         string                 `json:"status"`
	Recommendation *domain.Recommendation `json:"recommendation,omitempty"`
	Message        string                 `json:"message,omitempty"`
}

type similarResponse struct {
	Status  string                  `json:"status"`
	Items   []domain.Recommendation `json:"items,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// Router builds the HTTP handler. allowedOrigins feeds the CORS
// middleware; browser frontends call this API directly.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(s.requestLogger)

	r.Get("/", s.handleHealth)
	r.Post("/recommend", s.handleRecommend)
	r.Post("/similar", s.handleSimilar)

	return r
}

func (s *Server) ListenAndServe(addr string, allowedOrigins []string) error {
	s.log.Info().Str("addr", addr).Msg("http server listening")
	return http.ListenAndServe(addr, s.Router(allowedOrigins))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, recommendResponse{
			Status:  "error",
			Message: "invalid request body",
		})
		return
	}

	rec, err := s.engine.Recommend(req.Query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", req.Query).Msg("recommendation failed")
		writeJSON(w, statusFor(err), recommendResponse{
			Status:  "error",
			Message: recommend.UserMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, recommendResponse{
		Status:         "success",
		Recommendation: rec,
	})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, similarResponse{
			Status:  "error",
			Message: "invalid request body",
		})
		return
	}

	k := req.K
	if k <= 0 {
		k = s.topK
	}

	items, err := s.engine.TopSimilar(req.Query, k)
	if err != nil {
		s.log.Warn().Err(err).Str("query", req.Query).Msg("similarity lookup failed")
		writeJSON(w, statusFor(err), similarResponse{
			Status:  "error",
			Message: recommend.UserMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, similarResponse{
		Status: "success",
		Items:  items,
	})
}

// statusFor maps engine errors to HTTP codes: recoverable matching
// failures still answer 200 with a status field, only internal faults
// are 500.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, recommend.ErrNoReference), errors.Is(err, recommend.ErrNoMatch):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
