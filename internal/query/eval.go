package query

import (
	"regexp"
	"strings"
	"time"
)

// Matches evaluates a filter tree against one row. The tree is translated
// first, so either token or native form is accepted. An empty tree matches
// every row. Semantics mirror CompileSQL: unrecognized keys in operator
// position are dropped rather than rejected.
//
// The in-memory stores use this to answer the same filters the Postgres
// stores compile to SQL.
func Matches(expr Expression, row map[string]any) bool {
	return matchMap(Translate(expr), row)
}

func matchMap(expr Expression, row map[string]any) bool {
	m, ok := expr.(*FieldMap)
	if !ok || m == nil {
		return true
	}
	for _, entry := range m.entries {
		if !matchEntry(entry, row) {
			return false
		}
	}
	return true
}

func matchEntry(entry Entry, row map[string]any) bool {
	if op, ok := NativeOp(entry.Key); ok {
		list, isList := entry.Value.(List)
		if !isList {
			// Mis-shaped operand: dropped, mirrored by CompileSQL.
			return true
		}
		switch op {
		case OpAnd:
			for _, item := range list.Items {
				if !matchMap(item, row) {
					return false
				}
			}
			return true
		case OpOr:
			for _, item := range list.Items {
				if matchMap(item, row) {
					return true
				}
			}
			return len(list.Items) == 0
		default:
			return true
		}
	}
	return matchField(entry.Key, entry.Value, row)
}

func matchField(field string, value Expression, row map[string]any) bool {
	actual := row[field]

	switch v := value.(type) {
	case Scalar:
		return compareEq(actual, v.Value)
	case List:
		return member(actual, v.Items)
	case *FieldMap:
		for _, entry := range v.entries {
			op, ok := NativeOp(entry.Key)
			if !ok {
				continue
			}
			if !matchOp(actual, op, entry.Value, field, row) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func matchOp(actual any, op Op, operand Expression, field string, row map[string]any) bool {
	switch op {
	case OpAnd, OpOr:
		list, ok := operand.(List)
		if !ok {
			return true
		}
		for _, item := range list.Items {
			ok := matchField(field, item, row)
			if op == OpAnd && !ok {
				return false
			}
			if op == OpOr && ok {
				return true
			}
		}
		return op == OpAnd || len(list.Items) == 0
	case OpIn, OpNotIn:
		list, ok := operand.(List)
		if !ok {
			return true
		}
		in := member(actual, list.Items)
		if op == OpNotIn {
			return !in
		}
		return in
	}

	scalar, ok := operand.(Scalar)
	if !ok {
		return true
	}

	switch op {
	case OpEq, OpIs:
		return compareEq(actual, scalar.Value)
	case OpNe, OpNot:
		return !compareEq(actual, scalar.Value)
	case OpGt:
		cmp, ok := compareOrd(actual, scalar.Value)
		return ok && cmp > 0
	case OpGte:
		cmp, ok := compareOrd(actual, scalar.Value)
		return ok && cmp >= 0
	case OpLt:
		cmp, ok := compareOrd(actual, scalar.Value)
		return ok && cmp < 0
	case OpLte:
		cmp, ok := compareOrd(actual, scalar.Value)
		return ok && cmp <= 0
	case OpLike:
		return matchLike(actual, scalar.Value)
	case OpNotLike:
		return !matchLike(actual, scalar.Value)
	default:
		return true
	}
}

func member(actual any, items []Expression) bool {
	for _, item := range items {
		if scalar, ok := item.(Scalar); ok && compareEq(actual, scalar.Value) {
			return true
		}
	}
	return false
}

func compareEq(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if at, aok := asTime(a); aok {
		bt, bok := asTime(b)
		return bok && at.Equal(bt)
	}
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	return a == b
}

// compareOrd orders two values when they are both times, both numbers, or
// both strings. Incomparable pairs report false, so a bound against a
// mistyped value matches nothing.
func compareOrd(a, b any) (int, bool) {
	if at, aok := asTime(a); aok {
		bt, bok := asTime(b)
		if !bok {
			return 0, false
		}
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		default:
			return 0, true
		}
	}
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func matchLike(actual, pattern any) bool {
	s, sok := actual.(string)
	p, pok := pattern.(string)
	if !sok || !pok {
		return false
	}
	// SQL LIKE: % matches any run, _ matches one character.
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range p {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
