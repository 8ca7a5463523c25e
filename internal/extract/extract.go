// Package extract holds the slot extractors: pure functions that pull a
// typed value out of free text. Each reports success explicitly so a failed
// parse is an ordinary branch for the caller, never an error or a panic.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	lastFourRe = regexp.MustCompile(`\b(\d{4})\b`)
	amountRe   = regexp.MustCompile(`\b(\d+(\.\d{1,2})?)\b`)
	wholeRe    = regexp.MustCompile(`\b(\d+)\b`)
)

// Date parses a strict YYYY-MM-DD calendar date. Any other format fails.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LastFour scans for a standalone four-digit sequence and returns it as
// text, preserving leading zeros. Longer digit runs do not match.
func LastFour(s string) (string, bool) {
	m := lastFourRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Amount scans for a non-negative decimal with up to two fractional digits.
func Amount(s string) (float64, bool) {
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// WholeNumber scans for a whole number, e.g. a tenure in months.
func WholeNumber(s string) (int, bool) {
	m := wholeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
