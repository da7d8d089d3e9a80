package domain

import (
	"testing"
	"time"
)

func TestParseDistance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5km", 5},
		{"10.5 km", 10.5},
		{"0.8km", 0.8},
		{"0km", 0},
		{"rest", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseDistance(tt.in); got != tt.want {
			t.Errorf("ParseDistance(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10km"},
		{11.5, "11.5km"},
		{8.449, "8.4km"},
		{3.46, "3.5km"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.in); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePace(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5:00", 300 * time.Second},
		{"4:21", 261 * time.Second},
		{" 6:05 ", 365 * time.Second},
		{"fast", DefaultPace},
		{"5:75", DefaultPace},
		{"x:10", DefaultPace},
		{"", DefaultPace},
	}
	for _, tt := range tests {
		if got := ParsePace(tt.in); got != tt.want {
			t.Errorf("ParsePace(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{300 * time.Second, "5:00"},
		{261 * time.Second, "4:21"},
		{260*time.Second + 870*time.Millisecond, "4:21"},
		{59 * time.Second, "0:59"},
	}
	for _, tt := range tests {
		if got := FormatPace(tt.in); got != tt.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMultiplier(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.15", 1.15},
		{"0.85", 0.85},
		{"", NeutralMultiplier},
		{"abc", NeutralMultiplier},
		{"-1", NeutralMultiplier},
	}
	for _, tt := range tests {
		if got := ParseMultiplier(tt.in); got != tt.want {
			t.Errorf("ParseMultiplier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMultiplierRoundTrip(t *testing.T) {
	for _, m := range []float64{1.15, 0.85, 1, 1.2} {
		s := FormatMultiplier(m)
		if got := ParseMultiplier(s); got != m {
			t.Errorf("ParseMultiplier(FormatMultiplier(%v)) = %v (via %q)", m, got, s)
		}
	}
	if got := FormatMultiplier(1); got != "1.00" {
		t.Errorf("FormatMultiplier(1) = %q, want 1.00", got)
	}
}
