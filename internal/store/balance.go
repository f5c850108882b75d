package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
	"github.com/sorinciupitu/extrase-trezorerie/internal/parser"
)

// BalanceStore holds the current balance per account in the meta
// table, together with the as-of date that produced it. Writes apply
// the monotonic merge rule: statements processed out of chronological
// order can never regress a more current balance. The parser only
// supplies the comparison rule; serialization of concurrent writers
// lives here.
type BalanceStore struct {
	db *sql.DB
	mu sync.Mutex
}

func NewBalanceStore(db *sql.DB) *BalanceStore {
	return &BalanceStore{db: db}
}

// Current returns the stored balance and its as-of date. An account
// with no balance yet reads as zero at the sentinel date, which loses
// every merge comparison.
func (s *BalanceStore) Current(account string) (float64, string, error) {
	balance := 0.0
	dateISO := parser.SentinelDate

	var v string
	err := s.db.QueryRow(
		`SELECT value FROM meta WHERE account=? AND key='balance'`, account,
	).Scan(&v)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return 0, "", fmt.Errorf("failed to read balance: %w", err)
	default:
		if f, perr := strconv.ParseFloat(v, 64); perr == nil {
			balance = f
		}
	}

	err = s.db.QueryRow(
		`SELECT value FROM meta WHERE account=? AND key='balance_date'`, account,
	).Scan(&v)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return 0, "", fmt.Errorf("failed to read balance date: %w", err)
	default:
		dateISO = v
	}

	return balance, dateISO, nil
}

// Apply merges the candidate balance update into the store. Returns
// true when the update was applied, false when it was discarded for
// being older than the stored balance.
func (s *BalanceStore) Apply(account string, update models.BalanceUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, storedDate, err := s.Current(account)
	if err != nil {
		return false, err
	}
	if !parser.ShouldApplyBalance(update.AsOfDateISO, storedDate) {
		return false, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		"balance":      strconv.FormatFloat(update.Value, 'f', -1, 64),
		"balance_date": update.AsOfDateISO,
	} {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO meta (account, key, value) VALUES (?, ?, ?)`,
			account, key, value,
		); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return true, nil
}
