package query

// Op is the engine-native representation of one operator. The values are
// namespaced so a native key can never collide with a column name.
type Op string

const (
	OpEq      Op = "op.eq"
	OpNe      Op = "op.ne"
	OpGt      Op = "op.gt"
	OpGte     Op = "op.gte"
	OpLt      Op = "op.lt"
	OpLte     Op = "op.lte"
	OpAnd     Op = "op.and"
	OpOr      Op = "op.or"
	OpIn      Op = "op.in"
	OpNotIn   Op = "op.notIn"
	OpLike    Op = "op.like"
	OpNotLike Op = "op.notLike"
	OpIs      Op = "op.is"
	OpNot     Op = "op.not"
)

// tokenOps is the closed table mapping declarative operator tokens to their
// native counterparts. Tokens absent from this table are ordinary field
// keys, including misspelled operators: those pass through untouched and
// simply match nothing downstream. Deliberately preserved behavior.
var tokenOps = map[string]Op{
	"$eq":      OpEq,
	"$ne":      OpNe,
	"$gt":      OpGt,
	"$gte":     OpGte,
	"$lt":      OpLt,
	"$lte":     OpLte,
	"$and":     OpAnd,
	"$or":      OpOr,
	"$in":      OpIn,
	"$notIn":   OpNotIn,
	"$like":    OpLike,
	"$notLike": OpNotLike,
	"$is":      OpIs,
	"$not":     OpNot,
}

// nativeOps recognizes already-translated keys, so recognition is a table
// lookup rather than prefix matching.
var nativeOps = func() map[string]Op {
	m := make(map[string]Op, len(tokenOps))
	for _, op := range tokenOps {
		m[string(op)] = op
	}
	return m
}()

// NativeOp reports whether key is a native operator key.
func NativeOp(key string) (Op, bool) {
	op, ok := nativeOps[key]
	return op, ok
}

// Translate rewrites a filter tree, replacing operator tokens with their
// native counterparts. Non-operator keys are preserved and their values
// still recursed into; list elements are translated independently,
// preserving order and length; scalars pass through. The result is a fresh
// structure and the input is never mutated. Translating an already-native
// tree is a no-op, so double translation is safe.
func Translate(expr Expression) Expression {
	switch e := expr.(type) {
	case *FieldMap:
		out := NewFieldMap()
		for _, entry := range e.entries {
			key := entry.Key
			if op, ok := tokenOps[key]; ok {
				key = string(op)
			}
			out.Set(key, Translate(entry.Value))
		}
		return out
	case List:
		items := make([]Expression, len(e.Items))
		for i, item := range e.Items {
			items[i] = Translate(item)
		}
		return List{Items: items}
	default:
		// Scalars (including nil) and non-container top-level input are
		// returned unchanged.
		return expr
	}
}
