package engine

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// numberLiteral is satisfied by json.Number from encoding/json and go-json.
type numberLiteral interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

// matchesType reports whether v is an instance of the JSON type t.
func matchesType(v any, t string) bool {
	switch t {
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "null":
		return v == nil
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	case "number":
		_, ok := toFloat(v)
		return ok
	case "integer":
		return isInteger(v)
	}
	return false
}

// toFloat converts any numeric representation produced by a JSON decoder
// (or written by hand in Go) into a float64.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case numberLiteral:
		return literalFloat(t)
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	}
	return 0, false
}

// literalFloat parses a number literal. Literals beyond the float64 range
// are still numbers and come back as ±Inf.
func literalFloat(n numberLiteral) (float64, bool) {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return f, errors.Is(err, strconv.ErrRange)
	}
	return f, true
}

// isInteger follows JSON Schema: any number with a zero fractional part is
// an integer, so 30.0 qualifies.
func isInteger(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case numberLiteral:
		if _, err := t.Int64(); err == nil {
			return true
		}
		if f, ok := literalFloat(t); ok && math.IsInf(f, 0) {
			var r big.Rat
			_, ok := r.SetString(t.String())
			return ok && r.IsInt()
		}
	}
	f, ok := toFloat(v)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	return f == math.Trunc(f)
}

func inEnum(v any, enum []any) bool {
	for _, e := range enum {
		if jsonEqual(v, e) {
			return true
		}
	}
	return false
}

// jsonEqual compares two decoded JSON values, treating all numeric
// representations of the same number as equal.
func jsonEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch at := a.(type) {
	case nil:
		return b == nil
	case string:
		bt, ok := b.(string)
		return ok && at == bt
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !jsonEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bt, ok := b.(map[string]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !jsonEqual(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// WholeNumbers returns a copy of v in which every whole-valued number that
// fits an int64 is an int64, so typed decoding into integer fields accepts
// values such as 30.0. Maps and slices are copied, never modified.
func WholeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = WholeNumbers(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = WholeNumbers(e)
		}
		return out
	case numberLiteral:
		if _, err := t.Int64(); err == nil {
			return v
		}
		if f, ok := literalFloat(t); ok {
			if n, ok := wholeInt64(f); ok {
				return n
			}
		}
	case float64:
		if n, ok := wholeInt64(t); ok {
			return n
		}
	case float32:
		if n, ok := wholeInt64(float64(t)); ok {
			return n
		}
	}
	return v
}

func wholeInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
