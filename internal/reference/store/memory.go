package store

import (
	"context"
	"sort"

	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/internal/reference/models"
)

// InMemory serves the seeded reference rows, answering the same filter
// predicates the Postgres store compiles to SQL.
type InMemory struct {
	genders    []models.GenderType
	categories []models.TicketCategory
}

// NewInMemory builds a store over the seed data.
func NewInMemory() *InMemory {
	genders := SeedGenderTypes()
	sort.Slice(genders, func(i, j int) bool { return genders[i].SortOrder < genders[j].SortOrder })
	categories := SeedTicketCategories()
	sort.Slice(categories, func(i, j int) bool { return categories[i].SortOrder < categories[j].SortOrder })
	return &InMemory{genders: genders, categories: categories}
}

func (s *InMemory) ListGenderTypes(_ context.Context, where query.Expression, limit, offset int) ([]models.GenderType, error) {
	var matched []models.GenderType
	for _, g := range s.genders {
		if query.Matches(where, g.Row()) {
			matched = append(matched, g)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (s *InMemory) ListTicketCategories(_ context.Context, where query.Expression, limit, offset int) ([]models.TicketCategory, error) {
	var matched []models.TicketCategory
	for _, c := range s.categories {
		if query.Matches(where, c.Row()) {
			matched = append(matched, c)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (s *InMemory) GenderTypeExists(_ context.Context, id int64) (bool, error) {
	for _, g := range s.genders {
		if g.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// GenderIDRange reports the inclusive id range of the seeded gender rows,
// used to phrase the invalid-gender message.
func (s *InMemory) GenderIDRange(_ context.Context) (int64, int64, error) {
	min, max := s.genders[0].ID, s.genders[0].ID
	for _, g := range s.genders[1:] {
		if g.ID < min {
			min = g.ID
		}
		if g.ID > max {
			max = g.ID
		}
	}
	return min, max, nil
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]T, end-offset)
	copy(out, rows[offset:end])
	return out
}
