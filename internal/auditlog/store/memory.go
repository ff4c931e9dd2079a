package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mjza/mra-core-sub001/internal/auditlog/models"
	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
)

// InMemory keeps audit entries in a map guarded by a mutex. Used by unit
// tests and by local runs without a database.
type InMemory struct {
	mu      sync.Mutex
	nextID  int64
	entries map[int64]models.Entry
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, entries: make(map[int64]models.Entry)}
}

func (s *InMemory) Insert(_ context.Context, e *models.Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	stored := *e
	stored.LogID = id
	s.entries[id] = stored
	return id, nil
}

func (s *InMemory) GetByID(_ context.Context, id int64) (*models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := e
	return &out, nil
}

// AppendComments joins the new text onto the stored comments with a newline
// so prior annotations survive every update.
func (s *InMemory) AppendComments(_ context.Context, id int64, comments string, at time.Time) (*models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	e.Comments = JoinComments(e.Comments, comments)
	e.UpdatedAt = &at
	s.entries[id] = e

	out := e
	return &out, nil
}

func (s *InMemory) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *InMemory) ListByUser(_ context.Context, userID int64, where query.Expression) ([]models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Entry
	for _, e := range s.entries {
		if e.UserID == userID && query.Matches(where, e.Row()) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LogID < out[j].LogID })
	return out, nil
}

// JoinComments merges an existing comments value with a new one. Both inputs
// remain substrings of the result; empty sides pass the other through.
func JoinComments(old, next string) string {
	switch {
	case old == "":
		return next
	case next == "":
		return old
	default:
		return old + "\n" + next
	}
}
