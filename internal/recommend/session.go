package recommend

import "sync"

// Session records the titles already recommended so the engine never
// repeats itself within a process lifetime. The set only grows; it is
// reset by constructing a new Session (i.e. process or caller restart).
//
// The engine owns a shared default session, safe for concurrent
// requests; callers that want isolation per user or connection can
// create their own and pass it to RecommendFor.
type Session struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSession() *Session {
	return &Session{seen: make(map[string]struct{})}
}

func (s *Session) Add(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[title] = struct{}{}
}

func (s *Session) Contains(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[title]
	return ok
}

// Snapshot returns a copy of the recommended set, used as the ranker's
// exclusion set so scoring never races with concurrent insertions.
func (s *Session) Snapshot() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]struct{}, len(s.seen))
	for title := range s.seen {
		out[title] = struct{}{}
	}
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
