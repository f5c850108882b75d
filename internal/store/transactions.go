package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
)

// TransactionStore persists parsed transactions per account. The
// parser makes no uniqueness guarantee across repeated parses of the
// same document, so insertion is insert-if-absent keyed on
// (account, date_iso, amount, partner, filename).
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// InsertIfAbsent stores the transactions that are not already present
// for the account and returns how many were added.
func (s *TransactionStore) InsertIfAbsent(account string, txns []models.Transaction) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, t := range txns {
		var id int64
		err := tx.QueryRow(
			`SELECT id FROM transactions
			 WHERE account=? AND date_iso=? AND amount=? AND partner=? AND filename=?`,
			account, t.DateISO, t.Amount, t.Partner, t.Document,
		).Scan(&id)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("failed to check transaction existence: %w", err)
		}

		_, err = tx.Exec(
			`INSERT INTO transactions
			 (account, date, date_iso, partner, details, ref_number, amount, type, filename)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			account, t.Date, t.DateISO, t.Partner, t.Details, t.RefNumber, t.Amount, string(t.Direction), t.Document,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction: %w", err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return added, nil
}

// List returns the account's transactions, most recent first.
func (s *TransactionStore) List(account string) ([]models.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT date, date_iso, partner, details, ref_number, amount, type, filename
		 FROM transactions WHERE account=? ORDER BY date_iso DESC, id DESC`,
		account,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var direction string
		if err := rows.Scan(&t.Date, &t.DateISO, &t.Partner, &t.Details, &t.RefNumber, &t.Amount, &direction, &t.Document); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Direction = models.Direction(direction)
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// DeleteByDocument removes every transaction imported from the named
// document and returns how many were deleted.
func (s *TransactionStore) DeleteByDocument(account, document string) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM transactions WHERE account=? AND filename=?`,
		account, document,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", err)
	}
	return res.RowsAffected()
}

// Totals sums the account's credits and debits. Amounts are summed as
// decimals so long histories do not accumulate float error.
func (s *TransactionStore) Totals(account string) (income, expense decimal.Decimal, err error) {
	rows, err := s.db.Query(
		`SELECT amount, type FROM transactions WHERE account=?`, account,
	)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	income, expense = decimal.Zero, decimal.Zero
	for rows.Next() {
		var amount float64
		var direction string
		if err := rows.Scan(&amount, &direction); err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("failed to scan amount: %w", err)
		}
		d := decimal.NewFromFloat(amount)
		if models.Direction(direction) == models.Credit {
			income = income.Add(d)
		} else {
			expense = expense.Add(d)
		}
	}
	return income, expense, rows.Err()
}
