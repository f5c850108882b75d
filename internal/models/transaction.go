package models

// Word is a single token of positioned text on a statement page, as
// produced by the layout extractor. X is the left edge and Y the top
// edge, both in PDF points with the origin at the top-left corner.
type Word struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Page holds the positioned words of one statement page. Words carry
// no particular order; the parser clusters them into rows itself.
type Page struct {
	Width float64
	Words []Word
}

// Document is one statement file ready for parsing.
type Document struct {
	Name  string
	Pages []Page
}

// Direction classifies a transaction as inflow or outflow.
type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Transaction represents a single statement transaction.
type Transaction struct {
	Date      string    `json:"date"`     // as printed, whitespace removed
	DateISO   string    `json:"date_iso"` // yyyy-mm-dd, or the sentinel on parse failure
	Partner   string    `json:"partner"`
	Details   string    `json:"details"`
	RefNumber string    `json:"ref_number"`
	Amount    float64   `json:"amount"`
	Direction Direction `json:"type"`
	Document  string    `json:"filename"`
}

// BalanceUpdate is a candidate closing balance recovered from a
// statement. Whether it replaces the stored balance is decided by the
// monotonic merge rule, not here.
type BalanceUpdate struct {
	Value       float64 `json:"value"`
	AsOfDateISO string  `json:"as_of_date_iso"`
}

// StatementKind identifies a supported statement family.
type StatementKind string

const (
	// KindTreasury is the Romanian treasury account statement layout:
	// two debit/credit sub-columns with per-row dates.
	KindTreasury StatementKind = "trezorerie"
)

// StatementInfo is the full result of parsing one document.
type StatementInfo struct {
	Kind          StatementKind
	Transactions  []Transaction
	BalanceUpdate *BalanceUpdate // nil when no closing-balance row was found
}
