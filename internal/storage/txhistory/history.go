// Package txhistory maintains a queryable index of applied transactions in
// an embedded sqlite database. The index is advisory: ledger state never
// depends on it, and a node can rebuild it by replaying submissions.
package txhistory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("transaction not found")

// Record is one applied (or attempted) transaction.
type Record struct {
	Hash      string    // upper-hex transaction hash
	TxType    string    // transaction type name
	Account   string    // hex sender account
	Result    string    // result code name
	Applied   bool      // whether the transaction was recorded in a ledger
	LedgerSeq uint32    // ledger sequence at application time
	TxJSON    string    // flattened transaction body
	CreatedAt time.Time // insertion time
}

// Index wraps the sqlite handle.
type Index struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	hash        TEXT PRIMARY KEY,
	tx_type     TEXT NOT NULL,
	account     TEXT NOT NULL,
	result      TEXT NOT NULL,
	applied     INTEGER NOT NULL,
	ledger_seq  INTEGER NOT NULL,
	tx_json     TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account, created_at);
CREATE INDEX IF NOT EXISTS idx_transactions_ledger ON transactions(ledger_seq);
`

// Open opens (or creates) the history database at path.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	// sqlite allows a single writer; keep the pool at one connection to
	// avoid SQLITE_BUSY under concurrent submits.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Index{db: db}, nil
}

// Close closes the underlying database.
func (i *Index) Close() error { return i.db.Close() }

// Insert records a transaction. Re-inserting the same hash is an error:
// hashes are unique per submission.
func (i *Index) Insert(ctx context.Context, r Record) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := i.db.ExecContext(ctx,
		`INSERT INTO transactions (hash, tx_type, account, result, applied, ledger_seq, tx_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Hash, r.TxType, r.Account, r.Result, boolToInt(r.Applied), r.LedgerSeq, r.TxJSON, createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert transaction %s: %w", r.Hash, err)
	}
	return nil
}

// ByHash looks up a single transaction.
func (i *Index) ByHash(ctx context.Context, hash string) (Record, error) {
	row := i.db.QueryRowContext(ctx,
		`SELECT hash, tx_type, account, result, applied, ledger_seq, tx_json, created_at
		 FROM transactions WHERE hash = ?`, hash)
	return scanRecord(row)
}

// ByAccount returns the most recent transactions sent by account.
func (i *Index) ByAccount(ctx context.Context, account string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := i.db.QueryContext(ctx,
		`SELECT hash, tx_type, account, result, applied, ledger_seq, tx_json, created_at
		 FROM transactions WHERE account = ? ORDER BY created_at DESC, hash LIMIT ?`,
		account, limit)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

// Recent returns the most recently applied transactions.
func (i *Index) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := i.db.QueryContext(ctx,
		`SELECT hash, tx_type, account, result, applied, ledger_seq, tx_json, created_at
		 FROM transactions ORDER BY created_at DESC, hash LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

// Count returns the number of indexed transactions.
func (i *Index) Count(ctx context.Context) (int64, error) {
	var n int64
	err := i.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	var applied int
	var createdAt int64
	err := row.Scan(&r.Hash, &r.TxType, &r.Account, &r.Result, &applied, &r.LedgerSeq, &r.TxJSON, &createdAt)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	r.Applied = applied != 0
	r.CreatedAt = time.UnixMilli(createdAt)
	return r, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
