package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

// Field coercions used by the mappers. Each returns nil for a null value
// or one that cannot be coerced, so a bad field never aborts a document.

func intField(v document.Value) *int64 {
	out, ok := v.Int()
	if !ok {
		return nil
	}
	return &out
}

func textField(v document.Value) *string {
	out, ok := v.Text()
	if !ok {
		return nil
	}
	return &out
}

// keyField renders a natural key as text. Blank strings are absent.
func keyField(v document.Value) *string {
	out, ok := v.Text()
	if !ok {
		return nil
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	return &out
}

// firstKey returns the first candidate that yields a non-blank key.
func firstKey(candidates ...document.Value) *string {
	for _, c := range candidates {
		if out := keyField(c); out != nil {
			return out
		}
	}
	return nil
}

func decimalField(v document.Value) *decimal.Decimal {
	out, ok := v.Decimal()
	if !ok {
		return nil
	}
	return &out
}

func dateField(v document.Value) *calendar.Date {
	out, ok := calendar.Normalize(v)
	if !ok {
		return nil
	}
	return &out
}

// measureField parses numbers written with a unit or percent sign, e.g.
// "55%" or "5.793 km". Suffixes are matched in lower case.
func measureField(v document.Value, suffixes ...string) (*decimal.Decimal, bool) {
	if v.Kind() != document.KindString {
		out := decimalField(v)
		return out, out != nil
	}

	raw, _ := v.Text()
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, suffix := range suffixes {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, suffix))
	}
	out, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &out, true
}
