package timeutil

import (
	"testing"
	"time"
)

func TestStartAndEndOfDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	input := time.Date(2024, 3, 15, 14, 30, 45, 0, loc)

	start := StartOfDay(input)
	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, loc); !start.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", start, want)
	}
	if start.Location() != loc {
		t.Errorf("StartOfDay changed location to %v", start.Location())
	}

	end := EndOfDay(input)
	if want := time.Date(2024, 3, 15, 23, 59, 59, 999999999, loc); !end.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", end, want)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		weekStart time.Weekday
		want      time.Time
	}{
		{"monday week, wednesday", time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC), time.Monday, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"monday week, sunday", time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC), time.Monday, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"monday week, monday", time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), time.Monday, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"sunday week, sunday", time.Date(2024, 3, 17, 10, 0, 0, 0, time.UTC), time.Sunday, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)},
		{"sunday week, saturday", time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC), time.Sunday, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"across month", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), time.Monday, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.input, tt.weekStart)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v, %v) = %v, want %v", tt.input, tt.weekStart, got, tt.want)
			}
			end := EndOfWeek(tt.input, tt.weekStart)
			if wantEnd := tt.want.AddDate(0, 0, 7).Add(-time.Nanosecond); !end.Equal(wantEnd) {
				t.Errorf("EndOfWeek = %v, want %v", end, wantEnd)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	input := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)
	if got, want := StartOfMonth(input), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartOfMonth = %v, want %v", got, want)
	}
	if got, want := EndOfMonth(input), time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC); !got.Equal(want) {
		t.Errorf("EndOfMonth (leap year) = %v, want %v", got, want)
	}
}

func TestIsInRange(t *testing.T) {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	end := EndOfDay(start)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"at start", start, true},
		{"at end", end, true},
		{"inside", start.Add(12 * time.Hour), true},
		{"before", start.Add(-time.Nanosecond), false},
		{"after", end.Add(time.Nanosecond), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInRange(tt.t, start, end); got != tt.want {
				t.Errorf("IsInRange(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	start := time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)
	end := EndOfDay(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	days := Days(start, end)
	if len(days) != 3 {
		t.Fatalf("Days returned %d days, want 3", len(days))
	}
	if got := days[1].Format(DayLayout); got != "2024-02-29" {
		t.Errorf("second day = %s, want 2024-02-29", got)
	}
}
