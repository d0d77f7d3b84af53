// Package timeutil parses and formats positions on the timeline axis. The
// canonical unit is seconds; bare numbers are read as seconds.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"tableflip.dev/timescope/pkg/timeline"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-z]*)`)
	unitMap        = map[string]timeline.Time{
		"":        1,
		"s":       1,
		"sec":     1,
		"secs":    1,
		"second":  1,
		"seconds": 1,
		"m":       60,
		"min":     60,
		"mins":    60,
		"minute":  60,
		"minutes": 60,
		"h":       3600,
		"hr":      3600,
		"hrs":     3600,
		"hour":    3600,
		"hours":   3600,
	}
)

// ParseTime parses a human-friendly time string (for example "90", "1m30s",
// or "2h") into timeline units. Segments accumulate, so "1m30s" is 90.
func ParseTime(input string) (timeline.Time, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty time value")
	}

	total := timeline.Time(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid time segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", matches[1], err)
		}
		scale, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unknown time unit %q", matches[2])
		}
		total += value * scale
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}
	return total, nil
}

// FormatTime renders t compactly with the largest unit first, for example
// "1h2m3s". Zero renders as "0s".
func FormatTime(t timeline.Time) string {
	if t == timeline.Unbounded {
		return "∞"
	}

	var b strings.Builder
	if t < 0 {
		b.WriteString("-")
		t = -t
	}

	hours := math.Floor(t / 3600)
	t -= hours * 3600
	minutes := math.Floor(t / 60)
	seconds := t - minutes*60

	if hours > 0 {
		fmt.Fprintf(&b, "%gh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%gm", minutes)
	}
	if seconds > 0 || (hours == 0 && minutes == 0) {
		fmt.Fprintf(&b, "%gs", seconds)
	}
	return b.String()
}
