package parser

import (
	"strconv"
	"strings"
)

// placeholderAmounts are spellings the treasury layout prints in an
// empty amount cell. They parse as zero and must not survive as
// transaction candidates.
var placeholderAmounts = map[string]bool{
	".00": true,
	"00":  true,
	"0":   true,
	".0":  true,
	",00": true,
}

// ParseAmount converts a numeric token of unknown locale convention
// into a non-negative magnitude. Treasury statements mix "1.234,56"
// and "1,234.56" spellings, sometimes prefixed with "=" filler; the
// separator that appears first is the thousands separator, the later
// one is the decimal point. Malformed tokens resolve to 0.0 rather
// than an error — they are routine noise in this layout.
func ParseAmount(s string) float64 {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "=", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if clean == "" || placeholderAmounts[clean] {
		return 0.0
	}
	if strings.HasPrefix(clean, ".") {
		clean = "0" + clean
	}

	dot := strings.Index(clean, ".")
	comma := strings.Index(clean, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if dot < comma {
			// "1.234,56" — dot groups thousands, comma is decimal
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			// "1,234.56" — comma groups thousands
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case comma >= 0:
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0.0
	}
	return v
}
