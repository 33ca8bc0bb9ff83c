// Package timefmt converts the extract's duration values between the
// "HH:MM:SS" text form, integer seconds and float hours.
package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration parses a duration cell into whole seconds.
// Accepted forms: "H:MM:SS" (hours unbounded) or a bare number of seconds
// (fractions truncated). Anything else, including empty input, yields 0;
// malformed values in the extract are treated as "no time", never an error.
func ParseDuration(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	parts := strings.Split(value, ":")
	if len(parts) == 3 {
		h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		s, errS := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errH == nil && errM == nil && errS == nil {
			return h*3600 + m*60 + s
		}
		return 0
	}

	// Some exports store the column as raw seconds.
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}

	return 0
}

// SecondsToHMS formats whole seconds as zero-padded "HH:MM:SS".
// The hours field grows past 24 for long totals. Negative input yields
// "00:00:00".
func SecondsToHMS(seconds int) string {
	if seconds < 0 {
		return "00:00:00"
	}

	h := seconds / 3600
	rest := seconds % 3600
	m := rest / 60
	s := rest % 60

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// HoursToHMS formats float hours as "HH:MM:SS", rounding to the nearest
// second. NaN, infinite or negative input yields "00:00:00".
func HoursToHMS(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return "00:00:00"
	}
	return SecondsToHMS(int(math.Round(hours * 3600)))
}
