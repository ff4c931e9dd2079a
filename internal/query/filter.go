// Package query implements the data-access predicate engine: a declarative
// filter tree, translation of operator tokens to their native counterparts,
// incremental date-range merging, pagination validation, and compilation of
// translated trees to SQL or in-memory matchers.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Expression is one node of a filter tree: a Scalar leaf, an ordered
// FieldMap, or a List.
type Expression interface {
	isExpression()
}

// Scalar is a leaf value: string, float64, bool, time.Time, or nil.
type Scalar struct {
	Value any
}

func (Scalar) isExpression() {}

// Entry is one key/value pair of a FieldMap.
type Entry struct {
	Key   string
	Value Expression
}

// FieldMap is an ordered mapping from field or operator keys to
// sub-expressions. Order is preserved so compiled output is deterministic.
type FieldMap struct {
	entries []Entry
	index   map[string]int
}

func (*FieldMap) isExpression() {}

// NewFieldMap returns an empty ordered mapping.
func NewFieldMap() *FieldMap {
	return &FieldMap{index: map[string]int{}}
}

// Set inserts or replaces a key, keeping first-insertion order.
func (m *FieldMap) Set(key string, value Expression) *FieldMap {
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
	return m
}

// Get looks a key up.
func (m *FieldMap) Get(key string) (Expression, bool) {
	if i, ok := m.index[key]; ok {
		return m.entries[i].Value, true
	}
	return nil, false
}

// Len reports the number of entries.
func (m *FieldMap) Len() int { return len(m.entries) }

// Entries returns the entries in insertion order. The slice is a copy; the
// Expression values are shared.
func (m *FieldMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// List is an ordered sequence of expressions, used as the operand of
// boolean composition operators.
type List struct {
	Items []Expression
}

func (List) isExpression() {}

// DecodeJSON parses a JSON document into an Expression, preserving object
// key order (encoding/json maps would lose it). Numbers decode as float64,
// matching the dynamic shape filters arrive in.
func DecodeJSON(data []byte) (Expression, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	expr, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode filter: %w", err)
	}
	// Trailing content after the first value is malformed input.
	if dec.More() {
		return nil, fmt.Errorf("decode filter: trailing data")
	}
	return expr, nil
}

func decodeValue(dec *json.Decoder) (Expression, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewFieldMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string")
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			var list List
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list.Items = append(list.Items, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Scalar{Value: f}, nil
	case string:
		return Scalar{Value: t}, nil
	case bool:
		return Scalar{Value: t}, nil
	case nil:
		return Scalar{Value: nil}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
