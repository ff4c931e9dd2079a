package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMatchesEmptyFilter(t *testing.T) {
	require.True(t, Matches(nil, map[string]any{"a": 1}))
	require.True(t, Matches(NewFieldMap(), map[string]any{"a": 1}))
}

func TestMatchesEquality(t *testing.T) {
	row := map[string]any{"iso_code": "CA", "is_supported": true}

	require.True(t, Matches(NewFieldMap().Set("iso_code", Scalar{Value: "CA"}), row))
	require.False(t, Matches(NewFieldMap().Set("iso_code", Scalar{Value: "XYZ"}), row))
	require.True(t, Matches(NewFieldMap().Set("is_supported", Scalar{Value: true}), row))
}

func TestMatchesNumericCoercion(t *testing.T) {
	// JSON filters carry float64; rows carry int64.
	row := map[string]any{"sort_order": int64(3)}
	where := NewFieldMap().Set("sort_order", NewFieldMap().
		Set("$gte", Scalar{Value: float64(3)}))
	require.True(t, Matches(where, row))
}

func TestMatchesTimeBounds(t *testing.T) {
	created := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	row := map[string]any{"created_at": created}

	where := NewFieldMap().Set("created_at", NewFieldMap().
		Set("$gte", Scalar{Value: created.AddDate(0, 0, -1)}).
		Set("$lte", Scalar{Value: created.AddDate(0, 0, 1)}))
	require.True(t, Matches(where, row))

	outside := NewFieldMap().Set("created_at", NewFieldMap().
		Set("$gt", Scalar{Value: created}))
	require.False(t, Matches(outside, row))
}

func TestMatchesBooleanComposition(t *testing.T) {
	row := map[string]any{"iso_code": "US"}

	either := NewFieldMap().Set("$or", List{Items: []Expression{
		NewFieldMap().Set("iso_code", Scalar{Value: "CA"}),
		NewFieldMap().Set("iso_code", Scalar{Value: "US"}),
	}})
	require.True(t, Matches(either, row))

	both := NewFieldMap().Set("$and", List{Items: []Expression{
		NewFieldMap().Set("iso_code", Scalar{Value: "CA"}),
		NewFieldMap().Set("iso_code", Scalar{Value: "US"}),
	}})
	require.False(t, Matches(both, row))
}

func TestMatchesMembership(t *testing.T) {
	row := map[string]any{"gender_id": int64(4)}

	in := NewFieldMap().Set("gender_id", NewFieldMap().
		Set("$in", List{Items: []Expression{Scalar{Value: float64(4)}, Scalar{Value: float64(5)}}}))
	require.True(t, Matches(in, row))

	notIn := NewFieldMap().Set("gender_id", NewFieldMap().
		Set("$notIn", List{Items: []Expression{Scalar{Value: float64(4)}}}))
	require.False(t, Matches(notIn, row))
}

func TestMatchesLike(t *testing.T) {
	row := map[string]any{"country_name": "Canada"}

	require.True(t, Matches(NewFieldMap().Set("country_name",
		NewFieldMap().Set("$like", Scalar{Value: "Can%"})), row))
	require.False(t, Matches(NewFieldMap().Set("country_name",
		NewFieldMap().Set("$like", Scalar{Value: "_anada_"})), row))
	require.True(t, Matches(NewFieldMap().Set("country_name",
		NewFieldMap().Set("$like", Scalar{Value: "_anada"})), row))
}

func TestMatchesNull(t *testing.T) {
	row := map[string]any{"updated_by": nil}

	require.True(t, Matches(NewFieldMap().Set("updated_by", Scalar{Value: nil}), row))
	require.False(t, Matches(NewFieldMap().Set("updated_by",
		NewFieldMap().Set("$ne", Scalar{Value: nil})), row))
}

func TestMatchesUnrecognizedOperatorIsDropped(t *testing.T) {
	row := map[string]any{"age": int64(30)}
	where := NewFieldMap().Set("age", NewFieldMap().
		Set("$qe", Scalar{Value: float64(99)}))
	// The typoed operator contributes no constraint.
	require.True(t, Matches(where, row))
}

func TestMatchesAndCompileSQLAgreeOnMisShapedOperands(t *testing.T) {
	row := map[string]any{"iso_code": "CA"}

	// A boolean operator carrying a scalar instead of a list is dropped
	// by both evaluators: the remaining conditions still apply.
	where := NewFieldMap().
		Set("$and", Scalar{Value: "oops"}).
		Set("iso_code", Scalar{Value: "CA"})

	require.True(t, Matches(where, row))
	clause, args, err := CompileSQL(where)
	require.NoError(t, err)
	require.Equal(t, "iso_code = $1", clause)
	require.Equal(t, []any{"CA"}, args)

	require.False(t, Matches(where, map[string]any{"iso_code": "US"}))
}
