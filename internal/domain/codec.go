package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPace is used when a stored pace cannot be parsed (6:00 min/km).
const DefaultPace = 360 * time.Second

// NeutralMultiplier is the difficulty multiplier of an unadjusted plan.
const NeutralMultiplier = 1.0

var distancePattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseDistance extracts kilometres from strings like "5km" or "10.5 km".
// Anything unparseable yields 0, which callers treat as a non-distance session.
func ParseDistance(s string) float64 {
	m := distancePattern.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FormatDistance renders kilometres rounded to one decimal, e.g. "11.5km" or "10km".
func FormatDistance(km float64) string {
	return strconv.FormatFloat(RoundDistance(km), 'f', -1, 64) + "km"
}

// RoundDistance rounds kilometres to one decimal place.
func RoundDistance(km float64) float64 {
	return math.Round(km*10) / 10
}

// ParsePace parses a "MM:SS" per-km pace. Malformed input yields DefaultPace.
func ParsePace(s string) time.Duration {
	mins, secs, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return DefaultPace
	}
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 {
		return DefaultPace
	}
	sec, err := strconv.Atoi(secs)
	if err != nil || sec < 0 || sec > 59 {
		return DefaultPace
	}
	return time.Duration(m*60+sec) * time.Second
}

// FormatPace renders a pace as "M:SS", rounding to the nearest whole second first.
func FormatPace(d time.Duration) string {
	total := int(math.Round(d.Seconds()))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// ParseMultiplier parses a stored decimal multiplier. Unparseable or
// non-positive values yield NeutralMultiplier.
func ParseMultiplier(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return NeutralMultiplier
	}
	return v
}

// FormatMultiplier renders a multiplier with two decimals, e.g. "1.15".
func FormatMultiplier(m float64) string {
	return strconv.FormatFloat(m, 'f', 2, 64)
}

// FormatScore renders a performance score with two decimals.
func FormatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}
