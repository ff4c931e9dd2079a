package store

import (
	"context"
	"sync"
	"time"
)

// InMemory counts hits per key in fixed windows. Entries for expired
// windows are replaced lazily on the next hit for the same key.
type InMemory struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

func NewInMemory() *InMemory {
	return &InMemory{windows: make(map[string]*window)}
}

// Incr increments the counter for key and returns the new count together
// with the start of the window it was counted in.
func (s *InMemory) Incr(_ context.Context, key string, size time.Duration, now time.Time) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= size {
		w = &window{start: now}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.start, nil
}
