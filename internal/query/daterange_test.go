package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddDateRangeFilterNoParamsIsNoOp(t *testing.T) {
	where := NewFieldMap().Set("user_id", Scalar{Value: float64(7)})

	AddDateRangeFilter(where, map[string]string{}, "created_at")

	require.Equal(t, 1, where.Len())
	_, created := where.Get("created_at")
	require.False(t, created, "field key must not be created when neither bound is present")
}

func TestAddDateRangeFilterBothBounds(t *testing.T) {
	where := NewFieldMap()
	params := map[string]string{
		"created_atAfter":  "2024-01-01",
		"created_atBefore": "2024-06-30",
	}

	AddDateRangeFilter(where, params, "created_at")

	ops, _ := where.Get("created_at")
	opsMap := ops.(*FieldMap)

	lower, _ := opsMap.Get(string(OpGte))
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), lower.(Scalar).Value)

	upper, _ := opsMap.Get(string(OpLte))
	require.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), upper.(Scalar).Value)
}

func TestAddDateRangeFilterOrderIndependent(t *testing.T) {
	a := NewFieldMap()
	AddDateRangeFilter(a, map[string]string{"updated_atAfter": "2024-03-01"}, "updated_at")
	AddDateRangeFilter(a, map[string]string{"updated_atBefore": "2024-04-01"}, "updated_at")

	b := NewFieldMap()
	AddDateRangeFilter(b, map[string]string{"updated_atBefore": "2024-04-01"}, "updated_at")
	AddDateRangeFilter(b, map[string]string{"updated_atAfter": "2024-03-01"}, "updated_at")

	for _, op := range []string{string(OpGte), string(OpLte)} {
		av, aok := a.Entries()[0].Value.(*FieldMap).Get(op)
		bv, bok := b.Entries()[0].Value.(*FieldMap).Get(op)
		require.True(t, aok)
		require.True(t, bok)
		require.Equal(t, av, bv)
	}
}

func TestAddDateRangeFilterPreservesSiblingOperators(t *testing.T) {
	where := NewFieldMap().Set("created_at",
		NewFieldMap().Set(string(OpEq), Scalar{Value: "2024-05-05"}))

	AddDateRangeFilter(where, map[string]string{"created_atAfter": "2024-01-01"}, "created_at")

	ops := mustGet(t, where, "created_at").(*FieldMap)
	_, hasEq := ops.Get(string(OpEq))
	require.True(t, hasEq, "pre-existing equality must survive the merge")
	_, hasGte := ops.Get(string(OpGte))
	require.True(t, hasGte)
}

func TestAddDateRangeFilterLiftsScalarEquality(t *testing.T) {
	where := NewFieldMap().Set("created_at", Scalar{Value: "2024-05-05"})

	AddDateRangeFilter(where, map[string]string{"created_atBefore": "2024-12-31"}, "created_at")

	ops := mustGet(t, where, "created_at").(*FieldMap)
	eq, hasEq := ops.Get(string(OpEq))
	require.True(t, hasEq)
	require.Equal(t, Scalar{Value: "2024-05-05"}, eq)
}

func TestAddDateRangeFilterMalformedDateFailsOpen(t *testing.T) {
	where := NewFieldMap()
	AddDateRangeFilter(where, map[string]string{"created_atAfter": "not-a-date"}, "created_at")

	ops := mustGet(t, where, "created_at").(*FieldMap)
	lower, _ := ops.Get(string(OpGte))
	bound := lower.(Scalar).Value.(time.Time)
	require.Equal(t, unreachableLower, bound, "unparseable input yields an impossible bound, not an error")

	// The resulting predicate matches nothing.
	row := map[string]any{"created_at": time.Now()}
	require.False(t, Matches(where, row))
}

func mustGet(t *testing.T, m *FieldMap, key string) Expression {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok)
	return v
}
