// Package store holds the results of the current session. Records are kept
// in memory only: the list lives and dies with the process, and nothing is
// ever reordered or deleted. A separate memo keyed by input content replays
// provider outcomes for repeat uploads without new remote calls.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/mediaglot/mediaglot/internal"
)

type Store struct {
	mu      sync.RWMutex
	records []*internal.Record
	memo    map[string][]internal.Outcome
}

func New() *Store {
	return &Store{
		memo: make(map[string][]internal.Outcome),
	}
}

// Append adds a record to the end of the session list.
func (s *Store) Append(rec *internal.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Records returns a snapshot of the session list in append order.
func (s *Store) Records() []*internal.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*internal.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// MemoKey derives the memo key for an upload: the content hash plus the
// language pair, so the same file requested for a different pair is a miss.
func MemoKey(content []byte, sourceLang, targetLang string) string {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(sourceLang))
	h.Write([]byte{0})
	h.Write([]byte(targetLang))
	return hex.EncodeToString(h.Sum(nil))
}

// Memoize stores a copy of the record's outcomes under key.
func (s *Store) Memoize(key string, rec *internal.Record) {
	outcomes := make([]internal.Outcome, len(rec.Outcomes))
	copy(outcomes, rec.Outcomes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo[key] = outcomes
}

// Memoized returns the outcomes previously stored under key, if any.
func (s *Store) Memoized(key string) ([]internal.Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	outcomes, ok := s.memo[key]
	if !ok {
		return nil, false
	}

	out := make([]internal.Outcome, len(outcomes))
	copy(out, outcomes)
	return out, true
}
