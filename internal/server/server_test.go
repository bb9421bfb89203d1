package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"toonrec/internal/adapter/catalog"
	"toonrec/internal/adapter/memstore"
	"toonrec/internal/domain"
	"toonrec/internal/port"
	"toonrec/internal/recommend"
)

type fixedEncoder struct{}

func (fixedEncoder) Encode(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}
func (fixedEncoder) Dimension() int    { return 2 }
func (fixedEncoder) ModelName() string { return "fixed" }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	items := []domain.Item{
		{Title: "Solo Leveling", Type: "Manhwa", Genres: []string{"Action"}, Synopsis: "s", ImageURL: "u"},
		{Title: "Tower of God", Type: "Manhwa", Genres: []string{"Action"}, Synopsis: "s", ImageURL: "u"},
	}
	cat := catalog.FromItems(items)

	vecs := memstore.NewVectors()
	vecs.Upsert([]port.VectorRecord{
		{Title: "Solo Leveling", Vector: []float32{1, 0}},
		{Title: "Tower of God", Vector: []float32{0.8, 0}},
	})

	engine, err := recommend.New(cat, vecs, fixedEncoder{}, recommend.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	return New(engine, WithTopK(5))
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := newTestServer(t).Router([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestRecommendSuccess(t *testing.T) {
	h := newTestServer(t).Router([]string{"*"})

	w := postJSON(t, h, "/recommend", `{"query": "I like Solo Leveling"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" {
		t.Fatalf("Status = %q: %s", resp.Status, resp.Message)
	}
	if resp.Recommendation == nil || resp.Recommendation.Title != "Tower of God" {
		t.Errorf("Recommendation = %+v, want Tower of God", resp.Recommendation)
	}
}

func TestRecommendErrorPayload(t *testing.T) {
	h := newTestServer(t).Router([]string{"*"})

	w := postJSON(t, h, "/recommend", `{"query": ""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a recoverable failure", w.Code)
	}

	var resp recommendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "error" {
		t.Errorf("Status = %q, want error", resp.Status)
	}
	if resp.Message == "" {
		t.Error("error payload missing message")
	}
	if resp.Recommendation != nil {
		t.Error("error payload carries a recommendation")
	}
}

func TestRecommendBadBody(t *testing.T) {
	h := newTestServer(t).Router([]string{"*"})

	w := postJSON(t, h, "/recommend", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSimilar(t *testing.T) {
	h := newTestServer(t).Router([]string{"*"})

	w := postJSON(t, h, "/similar", `{"query": "leveling adventure", "k": 1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp similarResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" {
		t.Fatalf("Status = %q: %s", resp.Status, resp.Message)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}
	if resp.Items[0].Title != "Solo Leveling" {
		t.Errorf("top item = %q, want Solo Leveling (highest dot)", resp.Items[0].Title)
	}
}

func TestCORSHeaders(t *testing.T) {
	h := newTestServer(t).Router([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}
