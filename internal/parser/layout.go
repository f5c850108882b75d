package parser

import (
	"sort"
	"strings"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

// rowTolerance is the vertical band, in layout units, within which two
// words are considered part of the same visual row.
const rowTolerance = 5.0

// fallbackSplitRatio places the debit/credit boundary when a page
// carries no column headers.
const fallbackSplitRatio = 0.65

// Row is one visual statement line, words ordered left to right.
type Row []models.Word

// Text joins the row's words with single spaces.
func (r Row) Text() string {
	parts := make([]string, len(r))
	for i, w := range r {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// GroupRows clusters a page's words into visual rows. Words are sorted
// by top edge and walked once: a word starts a new row when it sits
// more than rowTolerance below the last word appended to the current
// row. The comparison against the last appended word, not the row's
// first, lets rows absorb the slow vertical drift the generator's
// layout engine produces across a line. Each finished row is re-sorted
// left to right.
func GroupRows(words []models.Word) []Row {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]models.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	var rows []Row
	current := Row{sorted[0]}
	for _, w := range sorted[1:] {
		last := current[len(current)-1]
		if abs(w.Y-last.Y) < rowTolerance {
			current = append(current, w)
		} else {
			rows = append(rows, current)
			current = Row{w}
		}
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
	}
	return rows
}

// DetectColumnSplit locates the x boundary between the debit and
// credit sub-columns of a page. When both column headers are present
// the split is the midpoint of their left edges; otherwise a fixed
// fraction of the page width. The result is computed once per page —
// headers do not repeat on every row.
func DetectColumnSplit(words []models.Word, pageWidth float64) float64 {
	var debitX, creditX float64
	var haveDebit, haveCredit bool
	for _, w := range words {
		upper := strings.ToUpper(w.Text)
		if !haveDebit && strings.Contains(upper, "DEBIT") {
			debitX = w.X
			haveDebit = true
		}
		if !haveCredit && strings.Contains(upper, "CREDIT") {
			creditX = w.X
			haveCredit = true
		}
	}
	if haveDebit && haveCredit {
		return (debitX + creditX) / 2
	}
	return pageWidth * fallbackSplitRatio
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
