package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xolan/billable/internal/billing"
)

func TestStyles_SourceIsPlainWithoutTerminal(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})

	tests := []struct {
		source billing.Source
		want   string
	}{
		{billing.SourceRounded, "rounded"},
		{billing.SourceRoundedOverlapping, "overtime"},
		{billing.SourceMinimumBillableTime, "minimum"},
	}
	for _, tt := range tests {
		got := styles.Source(tt.source)
		if strings.Contains(got, "\x1b[") {
			t.Errorf("Source(%s) contains escape codes: %q", tt.source, got)
		}
		if strings.TrimSpace(got) != tt.want {
			t.Errorf("Source(%s) = %q, want %q", tt.source, got, tt.want)
		}
		if len(got) != len(SourceLabel(billing.SourceRounded)) {
			t.Errorf("Source(%s) = %q is not padded to a common width", tt.source, got)
		}
	}
}
