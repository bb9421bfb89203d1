package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"
	"toonrec/internal/port"
)

var (
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")
	keyInfo       = []byte("info")
)

// Info records which encoder produced the stored vectors. The engine
// checks it against the configured encoder at startup so a store built
// with one model is never scored with another.
type Info struct {
	Model     string `json:"model"`
	Dimension int    `json:"dimension"`
}

// BoltStore persists title→vector records in BoltDB and serves reads
// from an in-memory copy loaded once at open. Search is brute force
// over the full map; the catalog is small enough that an ANN index
// would not pay for itself.
type BoltStore struct {
	db   *bbolt.DB
	info Info

	mu      sync.RWMutex
	vectors map[string][]float32
	titles  []string
}

type storedVector struct {
	Vector []float32 `json:"v"`
}

// Open opens (creating if needed) the embedding store at path and loads
// all vectors into memory.
func Open(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketVectors, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &BoltStore{db: db, vectors: make(map[string][]float32)}
	if err := s.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}
	return s, nil
}

func (s *BoltStore) load() error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketMeta).Get(keyInfo); data != nil {
			if err := json.Unmarshal(data, &s.info); err != nil {
				return fmt.Errorf("corrupt store info: %w", err)
			}
		}

		return tx.Bucket(bucketVectors).ForEach(func(k, v []byte) error {
			var stored storedVector
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("corrupt vector record %q: %w", k, err)
			}
			s.vectors[string(k)] = stored.Vector
			return nil
		})
	})
	if err != nil {
		return err
	}

	s.titles = make([]string, 0, len(s.vectors))
	for title := range s.vectors {
		s.titles = append(s.titles, title)
	}
	sort.Strings(s.titles)
	return nil
}

// Upsert writes vectors during the offline build. All vectors must
// share the dimension recorded in the store info, when one is set.
func (s *BoltStore) Upsert(records []port.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketVectors)
		for _, rec := range records {
			if s.info.Dimension > 0 && len(rec.Vector) != s.info.Dimension {
				return fmt.Errorf("vector dimension mismatch for %q: expected %d, got %d",
					rec.Title, s.info.Dimension, len(rec.Vector))
			}
			data, err := json.Marshal(storedVector{Vector: rec.Vector})
			if err != nil {
				return err
			}
			if err := b.Put([]byte(rec.Title), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, rec := range records {
		if _, ok := s.vectors[rec.Title]; !ok {
			s.titles = insertSorted(s.titles, rec.Title)
		}
		s.vectors[rec.Title] = rec.Vector
	}
	return nil
}

// SetInfo records the encoder model and dimension the store was built with.
func (s *BoltStore) SetInfo(info Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keyInfo, data)
	})
	if err != nil {
		return err
	}
	s.info = info
	return nil
}

func (s *BoltStore) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

func (s *BoltStore) Vector(title string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vec, ok := s.vectors[title]
	return vec, ok
}

// Titles returns all stored titles in lexicographic order.
func (s *BoltStore) Titles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.titles
}

func (s *BoltStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func insertSorted(titles []string, title string) []string {
	i := sort.SearchStrings(titles, title)
	titles = append(titles, "")
	copy(titles[i+1:], titles[i:])
	titles[i] = title
	return titles
}
