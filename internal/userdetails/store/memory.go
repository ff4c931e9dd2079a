package store

import (
	"context"
	"sync"

	"github.com/mjza/mra-core-sub001/internal/userdetails/models"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
)

// InMemory keeps one row per user id under a mutex, giving the same
// create-once semantics the database enforces with a unique constraint.
type InMemory struct {
	mu   sync.Mutex
	rows map[int64]models.UserDetails
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[int64]models.UserDetails)}
}

func (s *InMemory) Create(_ context.Context, d *models.UserDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[d.UserID]; exists {
		return sentinel.ErrDuplicate
	}
	s.rows[d.UserID] = *d
	return nil
}

func (s *InMemory) GetByUserID(_ context.Context, userID int64) (*models.UserDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := row
	return &out, nil
}

func (s *InMemory) Update(_ context.Context, d *models.UserDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[d.UserID]; !ok {
		return sentinel.ErrNotFound
	}
	s.rows[d.UserID] = *d
	return nil
}
