package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseNumber parses a possibly-empty, possibly-garbage numeric field.
// Missing, unparseable and non-finite values all report false; callers
// exclude the trade from the affected computation rather than failing.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseScale parses a 1..5 rating field (conviction, emotion). Values
// outside the scale are treated as absent.
func ParseScale(s string) (int, bool) {
	v, ok := ParseNumber(s)
	if !ok {
		return 0, false
	}
	n := int(v)
	if float64(n) != v || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// ParseBool parses a "true"/"false" tag field, false on absence.
func ParseBool(s string) (bool, bool) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, false
	}
	return v, true
}

// ParseDateTime combines a "2006-01-02" date with an optional "15:04"
// clock time. The date alone is enough; a malformed clock time is ignored.
func ParseDateTime(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day, true
	}
	c, err := time.ParseInLocation("15:04", clock, time.Local)
	if err != nil {
		return day, true
	}
	return day.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), true
}
