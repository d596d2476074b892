// Package durations persists known video durations across runs and fetches
// missing ones from the YouTube Data API. Both halves are advisory: every
// failure degrades to "duration unknown", never to a user-visible error.
package durations

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// Store is an append/update-only mapping of video slug to duration in whole
// seconds, backed by a JSON file. Entries are never evicted and a known
// duration is never downgraded to unknown.
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]int
}

// Open loads the store at path. A missing or corrupt file yields an empty
// store; Open never fails.
func Open(path string) *Store {
	s := &Store{
		path: path,
		data: make(map[string]int),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("durations: read %s: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("durations: corrupt cache at %s, starting empty: %v", path, err)
		s.data = make(map[string]int)
	}
	return s
}

// Get returns the known duration for a slug.
func (s *Store) Get(slug string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	secs, ok := s.data[slug]
	return secs, ok
}

// Snapshot returns a copy of the full mapping.
func (s *Store) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Len returns the number of known durations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// SetOne records a duration for one slug and persists. Non-positive values
// and no-op writes are ignored, so a flood of identical poll readings does
// not hammer the disk.
func (s *Store) SetOne(slug string, seconds int) {
	s.SetMany(map[string]int{slug: seconds})
}

// SetMany merges a batch of durations and persists once if anything changed.
// Entries with empty slugs or non-positive seconds are skipped: a value, once
// known, can be replaced by another measurement but never by "unknown".
func (s *Store) SetMany(updates map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for slug, secs := range updates {
		if slug == "" || secs <= 0 {
			continue
		}
		if s.data[slug] == secs {
			continue
		}
		s.data[slug] = secs
		changed = true
	}
	if changed {
		s.saveLocked()
	}
}

// saveLocked persists the mapping atomically. Persistence is best-effort:
// failures are logged and swallowed.
func (s *Store) saveLocked() {
	w, err := newAtomicWriter(s.path)
	if err != nil {
		log.Printf("durations: persist: %v", err)
		return
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.data); err != nil {
		w.Abort()
		log.Printf("durations: persist: %v", err)
		return
	}
	if err := w.Commit(); err != nil {
		log.Printf("durations: persist: %v", err)
	}
}
