// Package calendar normalizes loosely formatted timestamps into calendar
// dates for the warehouse date dimensions.
package calendar

import (
	"strings"
	"time"

	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	dateLayout,
}

// FromTime keeps the calendar day as observed in t's own location.
func FromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate accepts ISO-8601 date-times (a trailing Z, a numeric offset or
// no zone) and plain dates. The day is taken as written, without shifting
// to UTC. When no layout fits, the first ten characters are tried as a
// plain date.
func ParseDate(raw string) (Date, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Date{}, false
	}
	value = strings.TrimSuffix(value, "Z")

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return FromTime(t), true
		}
	}

	if len(value) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, value[:len(dateLayout)]); err == nil {
			return FromTime(t), true
		}
	}
	return Date{}, false
}

// Normalize converts a document value into a date. Strings are parsed,
// time values are truncated, everything else is unknown.
func Normalize(v document.Value) (Date, bool) {
	if t, ok := v.Time(); ok {
		return FromTime(t), true
	}
	if v.Kind() != document.KindString {
		return Date{}, false
	}
	raw, _ := v.Text()
	return ParseDate(raw)
}

// Time returns midnight UTC of the date, the form stored in DATE columns.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// WeekdayName is the English day name, e.g. "Saturday".
func (d Date) WeekdayName() string {
	return d.Weekday().String()
}

// IsWeekend reports Saturday or Sunday.
func (d Date) IsWeekend() bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
