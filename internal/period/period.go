// Package period implements the organizer's compact timeperiod grammar:
// a concatenation of signed integer components with w/d/h/m suffixes,
// e.g. "2d2h20m", "1w-2d+3h", "-25m".
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var componentRe = regexp.MustCompile(`^([+-]?)(\d+)([wdhm])`)

var unitDur = map[string]time.Duration{
	"w": 7 * 24 * time.Hour,
	"d": 24 * time.Hour,
	"h": time.Hour,
	"m": time.Minute,
}

// Parse converts a period string into a duration. Components may carry
// individual signs and are summed, so "2d-3h5m" is 1 day 21 hours 5 minutes.
func Parse(s string) (time.Duration, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return 0, fmt.Errorf("invalid period %q", s)
	}

	var total time.Duration
	for rest != "" {
		m := componentRe.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("invalid period %q", s)
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, fmt.Errorf("invalid period %q", s)
		}
		if m[1] == "-" {
			n = -n
		}
		total += time.Duration(n) * unitDur[m[3]]
		rest = rest[len(m[0]):]
	}
	return total, nil
}

// Format renders a duration in canonical period form, largest unit first,
// omitting zero components. The zero duration formats as "0m".
func Format(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}

	weeks := d / unitDur["w"]
	d -= weeks * unitDur["w"]
	days := d / unitDur["d"]
	d -= days * unitDur["d"]
	hours := d / unitDur["h"]
	d -= hours * unitDur["h"]
	minutes := d / unitDur["m"]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if weeks > 0 {
		fmt.Fprintf(&b, "%dw", weeks)
	}
	if days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}
	if b.Len() == 0 || (neg && b.Len() == 1) {
		return "0m"
	}
	return b.String()
}

// FormatList renders a list of durations, comma separated.
func FormatList(ds []time.Duration) string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, Format(d))
	}
	return strings.Join(parts, ", ")
}
