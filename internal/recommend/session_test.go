package recommend

import (
	"sync"
	"testing"
)

func TestSessionAddAndSnapshot(t *testing.T) {
	s := NewSession()

	s.Add("Tower of God")
	s.Add("Eleceed")
	s.Add("Tower of God") // duplicate

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if !s.Contains("Eleceed") {
		t.Error("Contains(Eleceed) = false")
	}

	snap := s.Snapshot()
	snap["Injected"] = struct{}{}
	if s.Contains("Injected") {
		t.Error("snapshot is not a copy")
	}
}

func TestSessionConcurrentAdds(t *testing.T) {
	s := NewSession()

	var wg sync.WaitGroup
	titles := []string{"A", "B", "C", "D", "E"}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(titles[i%len(titles)])
			s.Snapshot()
		}(i)
	}
	wg.Wait()

	if s.Len() != len(titles) {
		t.Errorf("Len = %d, want %d", s.Len(), len(titles))
	}
}
