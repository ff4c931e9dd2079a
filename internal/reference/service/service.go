// Package service exposes the paginated, filterable reads over the static
// reference tables.
package service

import (
	"context"
	"log/slog"

	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/internal/reference/models"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

// Store abstracts the reference backing store (memory or Postgres).
type Store interface {
	ListGenderTypes(ctx context.Context, where query.Expression, limit, offset int) ([]models.GenderType, error)
	ListTicketCategories(ctx context.Context, where query.Expression, limit, offset int) ([]models.TicketCategory, error)
	GenderTypeExists(ctx context.Context, id int64) (bool, error)
	GenderIDRange(ctx context.Context) (int64, int64, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetGenderTypes returns seeded gender rows matching where, ordered by
// sort_order. Pagination is validated before the store is touched; a filter
// with no matches returns an empty slice, never an error.
func (s *Service) GetGenderTypes(ctx context.Context, where query.Expression, p *query.Pagination) ([]models.GenderType, error) {
	if err := query.ValidatePagination(p); err != nil {
		return nil, err
	}
	rows, err := s.store.ListGenderTypes(ctx, where, p.LimitInt(), p.OffsetInt())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load gender types")
	}
	return rows, nil
}

// GetTicketCategories mirrors GetGenderTypes for the ticket category table.
func (s *Service) GetTicketCategories(ctx context.Context, where query.Expression, p *query.Pagination) ([]models.TicketCategory, error) {
	if err := query.ValidatePagination(p); err != nil {
		return nil, err
	}
	rows, err := s.store.ListTicketCategories(ctx, where, p.LimitInt(), p.OffsetInt())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load ticket categories")
	}
	return rows, nil
}

// GenderTypeExists reports whether id references a seeded gender row.
func (s *Service) GenderTypeExists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.store.GenderTypeExists(ctx, id)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check gender type")
	}
	return ok, nil
}

// GenderIDRange reports the valid inclusive gender id range.
func (s *Service) GenderIDRange(ctx context.Context) (int64, int64, error) {
	min, max, err := s.store.GenderIDRange(ctx)
	if err != nil {
		return 0, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load gender id range")
	}
	return min, max, nil
}
