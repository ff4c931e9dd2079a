package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

func TestValidatePagination(t *testing.T) {
	valid := &Pagination{Limit: 100, Offset: 0}
	require.NoError(t, ValidatePagination(valid))
	require.Equal(t, 100, valid.LimitInt())
	require.Equal(t, 0, valid.OffsetInt())

	invalid := []*Pagination{
		nil,
		{Limit: 0, Offset: 0},
		{Limit: -5, Offset: 0},
		{Limit: 10, Offset: -1},
		{Limit: 2.5, Offset: 0},
		{Limit: 10, Offset: 0.1},
		{Limit: math.NaN(), Offset: 0},
		{Limit: 10, Offset: math.Inf(1)},
	}
	for _, p := range invalid {
		err := ValidatePagination(p)
		require.Error(t, err)
		// Every violation fails uniformly: same kind, same message.
		require.True(t, dErrors.HasKind(err, dErrors.KindInvalidPagination))
		require.Equal(t, InvalidPaginationMessage, dErrors.MessageOf(err))
		require.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))
	}
}
