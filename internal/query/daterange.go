package query

import "time"

// Accepted layouts for range parameters, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Impossible bounds substituted for unparseable dates. The range stays
// representable but can match no row, so a malformed parameter fails open
// as an empty result instead of an error.
var (
	unreachableLower = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	unreachableUpper = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
)

// AddDateRangeFilter merges optional `<field>After` / `<field>Before`
// parameters into where as inclusive bounds on field. Existing operators on
// the field survive the merge: bounds are added to the field's operator
// mapping, never replacing it. When neither parameter is present the
// predicate is left completely unchanged and the field key is not created.
func AddDateRangeFilter(where *FieldMap, params map[string]string, field string) {
	after, hasAfter := params[field+"After"]
	before, hasBefore := params[field+"Before"]
	if !hasAfter && !hasBefore {
		return
	}

	ops := operatorMapFor(where, field)
	if hasAfter {
		ops.Set(string(OpGte), Scalar{Value: parseBound(after, unreachableLower)})
	}
	if hasBefore {
		ops.Set(string(OpLte), Scalar{Value: parseBound(before, unreachableUpper)})
	}
	where.Set(field, ops)
}

// operatorMapFor returns the operator mapping already present on field,
// creating one when absent. A bare scalar (equality shorthand) is lifted
// into an explicit equality operator so it survives the merge.
func operatorMapFor(where *FieldMap, field string) *FieldMap {
	existing, ok := where.Get(field)
	if !ok {
		return NewFieldMap()
	}
	switch e := existing.(type) {
	case *FieldMap:
		return e
	default:
		return NewFieldMap().Set(string(OpEq), e)
	}
}

func parseBound(raw string, unreachable time.Time) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return unreachable
}
