package timeutil

import (
	"strings"
	"testing"
	"time"
)

var parseNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

func TestParseDate_ValidInput(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, loc)},
		{"european", "15/01/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, loc)},
		{"ambiguous prefers iso", "2024-05-06", time.Date(2024, 5, 6, 0, 0, 0, 0, loc)},
		{"leap day", "29/02/2024", time.Date(2024, 2, 29, 0, 0, 0, 0, loc)},
		{"today", "today", time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
		{"yesterday", " Yesterday ", time.Date(2024, 3, 14, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, parseNow, loc)
			if err != nil {
				t.Fatalf("ParseDate(%q) returned error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != loc {
				t.Errorf("ParseDate(%q) location = %v, want %v", tt.input, got.Location(), loc)
			}
		})
	}
}

func TestParseDate_InvalidInput(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"", "cannot be empty"},
		{"2024", "missing month and day"},
		{"2024-03", "missing day"},
		{"03-15", "missing year"},
		{"15/03", "missing year"},
		{"2024-03-15-01", "too many date parts"},
		{"2024-02-30", "invalid date format"},
		{"tomorrow-ish", "invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDate(tt.input, parseNow, time.UTC)
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("ParseDate(%q) error = %q, want it to contain %q", tt.input, err, tt.wantMsg)
			}
		})
	}
}
