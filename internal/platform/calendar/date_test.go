package calendar

import (
	"testing"
	"time"

	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "utc designator", raw: "2023-08-12T15:00:00Z", want: "2023-08-12", wantOK: true},
		{name: "plain date", raw: "2023-08-12", want: "2023-08-12", wantOK: true},
		{name: "offset keeps written day", raw: "2023-08-12T23:30:00-05:00", want: "2023-08-12", wantOK: true},
		{name: "compact offset", raw: "2023-08-12T01:30:00+0200", want: "2023-08-12", wantOK: true},
		{name: "fractional seconds", raw: "2023-08-12T15:00:00.123Z", want: "2023-08-12", wantOK: true},
		{name: "space separated", raw: "2023-08-12 15:00:00", want: "2023-08-12", wantOK: true},
		{name: "prefix fallback", raw: "2023-08-12 garbage", want: "2023-08-12", wantOK: true},
		{name: "not a date", raw: "N/A"},
		{name: "empty", raw: ""},
		{name: "invalid day", raw: "2023-02-30"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseDate(tc.raw)
			if ok != tc.wantOK {
				t.Fatalf("ParseDate(%q) ok=%v, want %v", tc.raw, ok, tc.wantOK)
			}
			if ok && got.String() != tc.want {
				t.Fatalf("ParseDate(%q)=%s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got, ok := Normalize(document.Time(time.Date(2023, 8, 12, 22, 0, 0, 0, time.UTC)))
	if !ok || got.String() != "2023-08-12" {
		t.Fatalf("unexpected date from time value: %s ok=%v", got, ok)
	}

	if _, ok := Normalize(document.Int(20230812)); ok {
		t.Fatalf("expected integers to be unknown")
	}
	if _, ok := Normalize(document.Null()); ok {
		t.Fatalf("expected null to be unknown")
	}
}

func TestDateAttributes(t *testing.T) {
	t.Parallel()

	saturday := Date{Year: 2023, Month: time.August, Day: 12}
	if saturday.WeekdayName() != "Saturday" {
		t.Fatalf("unexpected weekday: %s", saturday.WeekdayName())
	}
	if !saturday.IsWeekend() {
		t.Fatalf("expected saturday to be weekend")
	}

	monday := Date{Year: 2023, Month: time.August, Day: 14}
	if monday.IsWeekend() {
		t.Fatalf("expected monday to be a weekday")
	}
	if !monday.Time().Equal(time.Date(2023, 8, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected midnight: %s", monday.Time())
	}
}
