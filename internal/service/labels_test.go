package service

import (
	"testing"
	"time"

	"socialrunner/runner-app/internal/domain"
)

func TestRelativeDate(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "Unknown"},
		{testNow.Add(-2 * time.Hour), "Today"},
		{time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC), "Yesterday"},
		{time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC), "3 days ago"},
		{time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), "1 week ago"},
		{time.Date(2026, 2, 24, 8, 0, 0, 0, time.UTC), "2 weeks ago"},
		{time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC), "Feb 8, 2026"},
		{time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC), "Mar 12, 2026"},
	}
	for _, tt := range tests {
		if got := RelativeDate(tt.at, testNow); got != tt.want {
			t.Errorf("RelativeDate(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	if got := AdjustmentTypeLabel(domain.AdjustmentPace); got != "Pace Adjusted" {
		t.Errorf("pace label = %q", got)
	}
	if got := AdjustmentTypeLabel("mystery"); got != "Adjusted" {
		t.Errorf("unknown type label = %q, want Adjusted", got)
	}
	if got := ReasonLabel(domain.ReasonHighEffortLevels); got != "Effort consistently very high" {
		t.Errorf("reason label = %q", got)
	}
	if got := ReasonLabel("cosmic_rays"); got != "System adjustment" {
		t.Errorf("unknown reason label = %q, want System adjustment", got)
	}
}
