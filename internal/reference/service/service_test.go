package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/internal/reference/store"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

type ReferenceServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func TestReferenceServiceSuite(t *testing.T) {
	suite.Run(t, new(ReferenceServiceSuite))
}

func (s *ReferenceServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
	s.ctx = context.Background()
}

func (s *ReferenceServiceSuite) TestGetGenderTypesReturnsAllSeeded() {
	rows, err := s.svc.GetGenderTypes(s.ctx, nil, &query.Pagination{Limit: 100, Offset: 0})
	s.Require().NoError(err)
	s.Require().Len(rows, 10)

	for i := 1; i < len(rows); i++ {
		s.LessOrEqual(rows[i-1].SortOrder, rows[i].SortOrder, "rows ordered by sort_order ascending")
	}
}

func (s *ReferenceServiceSuite) TestGetGenderTypesSlicesPartition() {
	var seen []int64
	for _, offset := range []float64{0, 3, 6} {
		rows, err := s.svc.GetGenderTypes(s.ctx, nil, &query.Pagination{Limit: 3, Offset: offset})
		s.Require().NoError(err)
		s.Require().Len(rows, 3)
		for _, r := range rows {
			seen = append(seen, r.ID)
		}
	}

	// Slices at offsets 0/3/6 partition the ordering without gaps or overlap.
	s.Require().Len(seen, 9)
	for i := 1; i < len(seen); i++ {
		s.Less(seen[i-1], seen[i])
	}
}

func (s *ReferenceServiceSuite) TestGetGenderTypesInvalidPagination() {
	_, err := s.svc.GetGenderTypes(s.ctx, nil, nil)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindInvalidPagination))

	_, err = s.svc.GetGenderTypes(s.ctx, nil, &query.Pagination{Limit: 0, Offset: 0})
	s.Require().Error(err)
	s.Equal(query.InvalidPaginationMessage, dErrors.MessageOf(err))
}

func (s *ReferenceServiceSuite) TestGetGenderTypesFiltered() {
	where := query.NewFieldMap().Set("gender_name", query.Scalar{Value: "Female"})
	rows, err := s.svc.GetGenderTypes(s.ctx, where, &query.Pagination{Limit: 100, Offset: 0})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(int64(2), rows[0].ID)

	none := query.NewFieldMap().Set("gender_name", query.Scalar{Value: "Unknown"})
	rows, err = s.svc.GetGenderTypes(s.ctx, none, &query.Pagination{Limit: 100, Offset: 0})
	s.Require().NoError(err)
	s.Empty(rows, "no matches yields an empty sequence, not an error")
}

func (s *ReferenceServiceSuite) TestGetTicketCategories() {
	rows, err := s.svc.GetTicketCategories(s.ctx, nil, &query.Pagination{Limit: 100, Offset: 0})
	s.Require().NoError(err)
	s.Require().NotEmpty(rows)
	for i := 1; i < len(rows); i++ {
		s.LessOrEqual(rows[i-1].SortOrder, rows[i].SortOrder)
	}
}

func (s *ReferenceServiceSuite) TestGenderTypeExists() {
	ok, err := s.svc.GenderTypeExists(s.ctx, 5)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.svc.GenderTypeExists(s.ctx, 99)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ReferenceServiceSuite) TestGenderIDRange() {
	min, max, err := s.svc.GenderIDRange(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), min)
	s.Equal(int64(10), max)
}
