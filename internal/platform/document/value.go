// Package document models schemaless staging records as a tagged union so
// mappers can navigate nested payloads without type assertions.
package document

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is one node of a staging document. The zero value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
	list []Value
	m    map[string]Value
}

func Null() Value               { return Value{} }
func Bool(v bool) Value         { return Value{kind: KindBool, b: v} }
func Int(v int64) Value         { return Value{kind: KindInt, i: v} }
func Float(v float64) Value     { return Value{kind: KindFloat, f: v} }
func String(v string) Value     { return Value{kind: KindString, s: v} }
func Time(v time.Time) Value    { return Value{kind: KindTime, t: v} }
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

func Map(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindMap, m: fields}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsMap() bool  { return v.kind == KindMap }

// Lookup walks nested maps by key. It reports false when any step is null,
// not a map, or missing, and when the final value is null.
func (v Value) Lookup(keys ...string) (Value, bool) {
	cur := v
	for _, key := range keys {
		if cur.kind != KindMap {
			return Value{}, false
		}
		next, ok := cur.m[key]
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	if cur.kind == KindNull {
		return Value{}, false
	}
	return cur, true
}

// Get is Lookup with a null default.
func (v Value) Get(keys ...string) Value {
	out, _ := v.Lookup(keys...)
	return out
}

// GetOr is Lookup with a supplied default.
func (v Value) GetOr(fallback Value, keys ...string) Value {
	if out, ok := v.Lookup(keys...); ok {
		return out
	}
	return fallback
}

// FirstPresent returns the first non-null candidate, or null.
func FirstPresent(candidates ...Value) Value {
	for _, candidate := range candidates {
		if candidate.kind != KindNull {
			return candidate
		}
	}
	return Value{}
}

func (v Value) Fields() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

func (v Value) Items() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// Int coerces integers, integral floats and numeric strings.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) || v.f != math.Trunc(v.f) {
			return 0, false
		}
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if v.f >= math.MaxInt64 || v.f < math.MinInt64 {
			return 0, false
		}
		return int64(v.f), true
	case KindString:
		out, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, false
		}
		return out, true
	default:
		return 0, false
	}
}

func (v Value) Decimal() (decimal.Decimal, bool) {
	switch v.kind {
	case KindInt:
		return decimal.NewFromInt(v.i), true
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(v.f), true
	case KindString:
		out, err := decimal.NewFromString(strings.TrimSpace(v.s))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return out, true
	default:
		return decimal.Decimal{}, false
	}
}

// Text renders scalars as text. Strings are returned as is, numbers in
// their shortest decimal form.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindInt:
		return strconv.FormatInt(v.i, 10), true
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64), true
	case KindTime:
		return v.t.Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}

func (v Value) Time() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.t, true
}

// Any converts the value back into plain Go values (map[string]any, []any,
// int64, float64, string, bool, time.Time or nil).
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindTime:
		return v.t
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Any()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for key, item := range v.m {
			out[key] = item.Any()
		}
		return out
	default:
		return nil
	}
}
