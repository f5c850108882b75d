package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

// TreasuryParser handles Romanian treasury account statement layouts.
//
// The statement prints transactions as rows of positioned words with a
// per-row date, a free-text counterparty, and an amount in either the
// debit or the credit sub-column:
//
//	12 15.03.2024 TZ00456 RO49TREZ0215069XXX001234 PRIMARIA SECTOR 3  =1.234,56
//
// There is no machine-readable table structure. Everything is
// recovered from word coordinates: rows by vertical proximity, the
// debit/credit boundary from column headers, amounts by position and
// count, the partner by stripping structural noise from what remains.
type TreasuryParser struct{}

func (p *TreasuryParser) StatementName() string {
	return "Extras de cont Trezorerie"
}

// spacedDatePattern matches row dates, tolerating the stray spaces the
// layout engine inserts around the dots.
var spacedDatePattern = regexp.MustCompile(`\d{2}\s*\.\s*\d{2}\s*\.\s*\d{4}`)

const (
	// Rows never carry amounts in the narrow leading description
	// margin; numeric tokens left of this fraction of the page width
	// are row ordinals or document numbers.
	amountMarginRatio = 0.3

	// Amount tokens longer than this are IBANs or reference codes
	// that happen to contain separators.
	maxAmountTokenLen = 15

	closingBalanceMarker = "Sold final"

	partnerUnknown  = "Necunoscut"
	partnerTransfer = "Transfer Bancar"
	detailsTreasury = "Plata Trezorerie"
)

// numericCandidate is a word plausibly holding a monetary amount.
type numericCandidate struct {
	value float64
	x     float64
	raw   string
}

// Parse walks the document's pages in order, clusters words into rows,
// and classifies each row as a transaction, a closing-balance line, or
// noise. Pure and deterministic: the same document always yields the
// same result.
func (p *TreasuryParser) Parse(doc models.Document) (*models.StatementInfo, error) {
	info := &models.StatementInfo{Kind: models.KindTreasury}

	// Statement-wide as-of date, set once by the first row that looks
	// like a generation/as-of line. Closing-balance rows carry no date
	// of their own and borrow this one.
	fileDateISO := SentinelDate

	for _, page := range doc.Pages {
		split := DetectColumnSplit(page.Words, page.Width)

		for _, row := range GroupRows(page.Words) {
			lineText := row.Text()

			if fileDateISO == SentinelDate {
				if d := extractFileDate(lineText); d != "" {
					fileDateISO = d
				}
			}

			if strings.Contains(lineText, closingBalanceMarker) {
				if v, ok := closingBalance(row); ok {
					info.BalanceUpdate = &models.BalanceUpdate{
						Value:       v,
						AsOfDateISO: fileDateISO,
					}
				}
			}

			if txn, ok := p.classifyRow(row, lineText, split, page.Width, doc.Name); ok {
				info.Transactions = append(info.Transactions, txn)
			}
		}
	}

	return info, nil
}

// classifyRow decides whether one grouped row encodes a transaction
// and, if so, resolves its amount, direction, date and counterparty.
func (p *TreasuryParser) classifyRow(row Row, lineText string, split, pageWidth float64, docName string) (models.Transaction, bool) {
	foundDate := spacedDatePattern.FindString(lineText)
	if foundDate == "" {
		return models.Transaction{}, false
	}

	// All numeric-looking tokens outside the date and the leading
	// margin. Zero-valued ones are placeholders: they never become the
	// amount but their raw text still has to leave the residual.
	var candidates []numericCandidate
	for _, w := range row {
		txt := strings.TrimSpace(strings.ReplaceAll(w.Text, "=", ""))
		if !looksNumeric(txt) || len(txt) >= maxAmountTokenLen {
			continue
		}
		if strings.Contains(foundDate, txt) {
			continue
		}
		if w.X <= pageWidth*amountMarginRatio {
			continue
		}
		candidates = append(candidates, numericCandidate{value: ParseAmount(txt), x: w.X, raw: txt})
	}

	var valid []numericCandidate
	for _, c := range candidates {
		if c.value > 0 {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return models.Transaction{}, false
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].x < valid[j].x })

	var amount float64
	var direction models.Direction
	if len(valid) >= 2 {
		// Two amounts printed means the rightmost is the credit
		// column. The second-to-rightmost fallback is kept from the
		// original classification even though the positive filter
		// means the first branch always applies.
		if valid[len(valid)-1].value > 0 {
			amount = valid[len(valid)-1].value
			direction = models.Credit
		} else if valid[len(valid)-2].value > 0 {
			amount = valid[len(valid)-2].value
			direction = models.Debit
		}
	} else {
		if valid[0].x > split {
			amount = valid[0].value
			direction = models.Credit
		} else {
			amount = valid[0].value
			direction = models.Debit
		}
	}
	if amount <= 0 {
		return models.Transaction{}, false
	}

	residual := strings.ReplaceAll(lineText, foundDate, "")
	for _, c := range candidates {
		residual = strings.ReplaceAll(residual, c.raw, "")
	}
	residual = strings.TrimSpace(residual)

	refNumber := ExtractReference(residual)
	iban := ExtractIBAN(residual)

	partner := CleanPartnerName(residual)
	if partner == "" {
		if iban != "" {
			partner = partnerTransfer
		} else {
			partner = partnerUnknown
		}
	}
	details := detailsTreasury
	if iban != "" {
		details = iban
	}

	return models.Transaction{
		Date:      strings.ReplaceAll(foundDate, " ", ""),
		DateISO:   NormalizeDate(foundDate),
		Partner:   partner,
		Details:   details,
		RefNumber: refNumber,
		Amount:    amount,
		Direction: direction,
		Document:  docName,
	}, true
}

// extractFileDate recognises the statement's generation/as-of line and
// returns its date in ISO form, or "" when the row is not one. The
// year must contain "20" as a sanity check against OCR noise.
func extractFileDate(lineText string) string {
	cand := spacedDatePattern.FindString(lineText)
	if cand == "" || !strings.Contains(cand, "20") {
		return ""
	}
	lower := strings.ToLower(lineText)
	if !strings.Contains(lower, "la data") && !strings.Contains(lower, "editat") {
		return ""
	}
	return NormalizeDate(cand)
}

// closingBalance pulls the candidate closing balance out of a "Sold
// final" row: the last positive numeric token in row order. Unlike
// transaction amounts there is no margin restriction — the balance can
// sit anywhere on the line.
func closingBalance(row Row) (float64, bool) {
	var last float64
	var found bool
	for _, w := range row {
		txt := strings.TrimSpace(strings.ReplaceAll(w.Text, "=", ""))
		if !looksNumeric(txt) {
			continue
		}
		if v := ParseAmount(txt); v > 0 {
			last = v
			found = true
		}
	}
	return last, found
}

// looksNumeric reports whether a token plausibly holds an amount: at
// least one digit plus a decimal or thousands separator.
func looksNumeric(txt string) bool {
	return strings.ContainsAny(txt, "0123456789") &&
		(strings.Contains(txt, ".") || strings.Contains(txt, ","))
}

// ShouldApplyBalance is the monotonic merge rule: a candidate balance
// replaces the stored one only when its as-of date is not earlier.
// ISO dates compare lexically in chronological order, so a statement
// processed out of order can never regress a more current balance.
func ShouldApplyBalance(newDateISO, storedDateISO string) bool {
	return newDateISO >= storedDateISO
}
