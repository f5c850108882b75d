package parser

import (
	"strings"
	"time"
)

// SentinelDate marks a date that could not be parsed. It flows through
// into output so downstream ordering degrades instead of dropping rows.
const SentinelDate = "1900-01-01"

// NormalizeDate parses a dd.mm.yyyy token, tolerating stray spaces
// around the dots, and returns the ISO yyyy-mm-dd form. Invalid input
// returns SentinelDate, never an error.
func NormalizeDate(s string) string {
	clean := strings.ReplaceAll(s, " ", "")
	t, err := time.Parse("02.01.2006", clean)
	if err != nil {
		return SentinelDate
	}
	return t.Format("2006-01-02")
}
