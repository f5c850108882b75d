package parser

import (
	"regexp"
	"strings"
)

// Structural noise found in treasury statement rows. The removal order
// matters: later patterns assume earlier ones already collapsed.
var (
	ibanPattern       = regexp.MustCompile(`RO\d{2}[A-Z]{4}\w+`)
	refPattern        = regexp.MustCompile(`TZ\d+`)
	datePattern       = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	digitRunPattern   = regexp.MustCompile(`\b\d{5,13}\b`)
	rowOrdinalPattern = regexp.MustCompile(`^\d+\s+`)
	leadingPunct      = regexp.MustCompile(`^[ .\-,]+`)
	spaceRunPattern   = regexp.MustCompile(`\s+`)
)

// CleanPartnerName strips structural noise from residual row text —
// IBANs, TZ reference codes, embedded dates, statement numbers, the
// leading row ordinal — leaving the free-text counterparty name. May
// return ""; the row classifier picks the fallback.
func CleanPartnerName(raw string) string {
	text := ibanPattern.ReplaceAllString(raw, "")
	text = refPattern.ReplaceAllString(text, "")
	text = datePattern.ReplaceAllString(text, "")
	text = digitRunPattern.ReplaceAllString(text, "")
	text = rowOrdinalPattern.ReplaceAllString(text, "")
	text = leadingPunct.ReplaceAllString(text, "")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ExtractReference returns the first TZ reference code in the text.
func ExtractReference(text string) string {
	return refPattern.FindString(text)
}

// ExtractIBAN returns the first Romanian IBAN in the text.
func ExtractIBAN(text string) string {
	return ibanPattern.FindString(text)
}
