package query

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// CompileSQL compiles a filter tree into a parameterized SQL condition with
// $1-style placeholders. The tree is translated first (a no-op for trees
// that are already native), so callers may pass either form. An empty or
// nil tree compiles to an empty clause: no WHERE, match everything.
//
// Keys that are neither native operators nor recognized in operator
// position are dropped: a typoed operator token silently fails to filter.
// The same goes for operands of the wrong shape (a boolean operator
// without a list, a comparison without a scalar): the condition is
// dropped rather than rejected, so CompileSQL and Matches agree on
// malformed input. Errors are reserved for unsafe field names and
// expression kinds the compiler cannot represent.
func CompileSQL(expr Expression) (string, []any, error) {
	c := &sqlCompiler{}
	clause, err := c.compile(Translate(expr))
	if err != nil {
		return "", nil, err
	}
	return clause, c.args, nil
}

type sqlCompiler struct {
	args []any
}

func (c *sqlCompiler) placeholder(value any) string {
	c.args = append(c.args, value)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *sqlCompiler) compile(expr Expression) (string, error) {
	m, ok := expr.(*FieldMap)
	if !ok || m == nil || m.Len() == 0 {
		return "", nil
	}

	var parts []string
	for _, entry := range m.entries {
		cond, err := c.compileEntry(entry)
		if err != nil {
			return "", err
		}
		if cond != "" {
			parts = append(parts, cond)
		}
	}
	return strings.Join(parts, " AND "), nil
}

func (c *sqlCompiler) compileEntry(entry Entry) (string, error) {
	if op, ok := NativeOp(entry.Key); ok {
		switch op {
		case OpAnd, OpOr:
			return c.compileBoolean(op, entry.Value)
		default:
			// Comparison operators need a field context; dropped here.
			return "", nil
		}
	}
	return c.compileField(entry.Key, entry.Value)
}

func (c *sqlCompiler) compileBoolean(op Op, operand Expression) (string, error) {
	list, ok := operand.(List)
	if !ok {
		// Mis-shaped operand: dropped, same as Matches treats it.
		return "", nil
	}
	joiner := " AND "
	if op == OpOr {
		joiner = " OR "
	}
	var parts []string
	for _, item := range list.Items {
		cond, err := c.compile(item)
		if err != nil {
			return "", err
		}
		if cond != "" {
			parts = append(parts, "("+cond+")")
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, joiner) + ")", nil
}

func (c *sqlCompiler) compileField(field string, value Expression) (string, error) {
	if !identifierPattern.MatchString(field) {
		return "", fmt.Errorf("invalid field name %q", field)
	}

	switch v := value.(type) {
	case Scalar:
		if v.Value == nil {
			return field + " IS NULL", nil
		}
		return field + " = " + c.placeholder(v.Value), nil
	case List:
		return c.compileIn(field, v, false)
	case *FieldMap:
		var parts []string
		for _, entry := range v.entries {
			op, ok := NativeOp(entry.Key)
			if !ok {
				// Unrecognized key in operator position: dropped.
				continue
			}
			cond, err := c.compileOp(field, op, entry.Value)
			if err != nil {
				return "", err
			}
			if cond != "" {
				parts = append(parts, cond)
			}
		}
		return strings.Join(parts, " AND "), nil
	default:
		return "", fmt.Errorf("unsupported expression for field %q", field)
	}
}

func (c *sqlCompiler) compileOp(field string, op Op, operand Expression) (string, error) {
	switch op {
	case OpIn, OpNotIn:
		list, ok := operand.(List)
		if !ok {
			return "", nil
		}
		return c.compileIn(field, list, op == OpNotIn)
	case OpAnd, OpOr:
		list, ok := operand.(List)
		if !ok {
			return "", nil
		}
		joiner := " AND "
		if op == OpOr {
			joiner = " OR "
		}
		var parts []string
		for _, item := range list.Items {
			cond, err := c.compileField(field, item)
			if err != nil {
				return "", err
			}
			if cond != "" {
				parts = append(parts, "("+cond+")")
			}
		}
		if len(parts) == 0 {
			return "", nil
		}
		return "(" + strings.Join(parts, joiner) + ")", nil
	}

	scalar, ok := operand.(Scalar)
	if !ok {
		return "", nil
	}

	switch op {
	case OpEq, OpIs:
		if scalar.Value == nil {
			return field + " IS NULL", nil
		}
		return field + " = " + c.placeholder(scalar.Value), nil
	case OpNe, OpNot:
		if scalar.Value == nil {
			return field + " IS NOT NULL", nil
		}
		return field + " <> " + c.placeholder(scalar.Value), nil
	case OpGt:
		return field + " > " + c.placeholder(scalar.Value), nil
	case OpGte:
		return field + " >= " + c.placeholder(scalar.Value), nil
	case OpLt:
		return field + " < " + c.placeholder(scalar.Value), nil
	case OpLte:
		return field + " <= " + c.placeholder(scalar.Value), nil
	case OpLike:
		return field + " LIKE " + c.placeholder(scalar.Value), nil
	case OpNotLike:
		return field + " NOT LIKE " + c.placeholder(scalar.Value), nil
	default:
		return "", fmt.Errorf("unhandled operator %s", op)
	}
}

func (c *sqlCompiler) compileIn(field string, list List, negate bool) (string, error) {
	if len(list.Items) == 0 {
		// IN over an empty set matches nothing; NOT IN matches everything.
		if negate {
			return "TRUE", nil
		}
		return "FALSE", nil
	}
	placeholders := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		scalar, ok := item.(Scalar)
		if !ok {
			// Non-scalar members never match in Matches either.
			continue
		}
		placeholders = append(placeholders, c.placeholder(scalar.Value))
	}
	if len(placeholders) == 0 {
		if negate {
			return "TRUE", nil
		}
		return "FALSE", nil
	}
	keyword := " IN ("
	if negate {
		keyword = " NOT IN ("
	}
	return field + keyword + strings.Join(placeholders, ", ") + ")", nil
}
