package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorinciupitu/extrase-trezorerie/internal/models"
	"github.com/sorinciupitu/extrase-trezorerie/internal/parser"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date: "10.01.2024", DateISO: "2024-01-10",
			Partner: "PRIMARIA SECTOR 3", Details: "Plata Trezorerie",
			RefNumber: "TZ00123", Amount: 200.0,
			Direction: models.Debit, Document: "extras_ianuarie.pdf",
		},
		{
			Date: "15.01.2024", DateISO: "2024-01-15",
			Partner: "Transfer Salariu", Details: "RO49AAAA1234567890123456",
			RefNumber: "TZ00456", Amount: 4500.0,
			Direction: models.Credit, Document: "extras_ianuarie.pdf",
		},
	}
}

func TestTransactionStore_InsertIfAbsent(t *testing.T) {
	db := openTestDB(t)
	s := NewTransactionStore(db)

	added, err := s.InsertIfAbsent("acct-1", sampleTransactions())
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// Re-parsing the same document must not duplicate anything.
	added, err = s.InsertIfAbsent("acct-1", sampleTransactions())
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	// The same transactions under another account are independent.
	added, err = s.InsertIfAbsent("acct-2", sampleTransactions())
	require.NoError(t, err)
	assert.Equal(t, 2, added)
}

func TestTransactionStore_ListOrdering(t *testing.T) {
	db := openTestDB(t)
	s := NewTransactionStore(db)

	_, err := s.InsertIfAbsent("acct-1", sampleTransactions())
	require.NoError(t, err)

	txns, err := s.List("acct-1")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// Most recent first.
	assert.Equal(t, "2024-01-15", txns[0].DateISO)
	assert.Equal(t, "2024-01-10", txns[1].DateISO)
	assert.Equal(t, models.Credit, txns[0].Direction)

	other, err := s.List("acct-other")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTransactionStore_DeleteByDocument(t *testing.T) {
	db := openTestDB(t)
	s := NewTransactionStore(db)

	_, err := s.InsertIfAbsent("acct-1", sampleTransactions())
	require.NoError(t, err)

	deleted, err := s.DeleteByDocument("acct-1", "extras_ianuarie.pdf")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	txns, err := s.List("acct-1")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransactionStore_Totals(t *testing.T) {
	db := openTestDB(t)
	s := NewTransactionStore(db)

	_, err := s.InsertIfAbsent("acct-1", sampleTransactions())
	require.NoError(t, err)

	income, expense, err := s.Totals("acct-1")
	require.NoError(t, err)
	assert.Equal(t, "4500", income.String())
	assert.Equal(t, "200", expense.String())
}

func TestBalanceStore_MonotonicMerge(t *testing.T) {
	db := openTestDB(t)
	s := NewBalanceStore(db)

	// Empty account reads as zero at the sentinel date.
	balance, dateISO, err := s.Current("acct-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance)
	assert.Equal(t, parser.SentinelDate, dateISO)

	applied, err := s.Apply("acct-1", models.BalanceUpdate{Value: 1000.0, AsOfDateISO: "2024-01-01"})
	require.NoError(t, err)
	assert.True(t, applied)

	// Newer statement advances the balance.
	applied, err = s.Apply("acct-1", models.BalanceUpdate{Value: 1200.0, AsOfDateISO: "2024-01-15"})
	require.NoError(t, err)
	assert.True(t, applied)

	// An older statement processed late is discarded.
	applied, err = s.Apply("acct-1", models.BalanceUpdate{Value: 900.0, AsOfDateISO: "2024-01-10"})
	require.NoError(t, err)
	assert.False(t, applied)

	balance, dateISO, err = s.Current("acct-1")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, balance)
	assert.Equal(t, "2024-01-15", dateISO)

	// Same-day statement overwrites.
	applied, err = s.Apply("acct-1", models.BalanceUpdate{Value: 1300.0, AsOfDateISO: "2024-01-15"})
	require.NoError(t, err)
	assert.True(t, applied)
}
