package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open connects to the sqlite database at the given path and ensures
// the schema exists. WAL mode and a busy timeout keep the single
// writer responsive; one open connection avoids sqlite lock churn.
func Open(databasePath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", databasePath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			account TEXT NOT NULL,
			date TEXT NOT NULL,
			date_iso TEXT NOT NULL,
			partner TEXT NOT NULL,
			details TEXT NOT NULL,
			ref_number TEXT NOT NULL,
			amount REAL NOT NULL,
			type TEXT NOT NULL,
			filename TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account_date
			ON transactions (account, date_iso)`,
		`CREATE TABLE IF NOT EXISTS meta (
			account TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (account, key)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
