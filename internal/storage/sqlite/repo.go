// Package sqlite implements the SQLite-backed destination store using
// database/sql over the pure-Go modernc driver. Inserts are batched: every
// call to InsertRows runs inside a single transaction with one prepared
// statement, so the commit granularity of the pipeline is exactly one call.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // database/sql driver registration
)

// Open opens (creating if needed) a SQLite database at path and verifies
// the connection with a short ping. Path may be a plain file path, a DSN
// such as "file:medicines.db?cache=shared", or ":memory:".
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: path must not be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

// Repository wraps an open database handle with the operations the loader
// needs: DDL execution, batched row insertion, and row counting.
type Repository struct {
	db *sql.DB
}

// New returns a Repository over an already-open handle. The caller retains
// ownership of db and is responsible for closing it.
func New(db *sql.DB) *Repository { return &Repository{db: db} }

// Exec executes an arbitrary SQL statement, typically DDL. Empty statements
// are a no-op.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// InsertRows inserts rows into table within one transaction and commits
// once at the end. Every row must have len(columns) values, aligned to the
// columns order. On any insert error the whole transaction is rolled back
// and none of the batch's rows persist.
//
// The returned count is the number of rows committed: len(rows) on success,
// 0 on error.
func (r *Repository) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: InsertRows: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = sqlIdent(c)
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		sqlIdent(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: InsertRows: row %d has %d values, want %d", i, len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return int64(len(rows)), nil
}

// Count returns the number of rows in table.
func (r *Repository) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", sqlIdent(table))
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count %s: %w", table, err)
	}
	return n, nil
}

// Schema fetches the stored CREATE TABLE text for table from sqlite_master.
func (r *Repository) Schema(ctx context.Context, table string) (string, error) {
	var ddl string
	err := r.db.QueryRowContext(ctx,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&ddl)
	if err != nil {
		return "", fmt.Errorf("sqlite: schema for %s: %w", table, err)
	}
	return ddl, nil
}

// IndexNames lists the named indexes defined on table, excluding SQLite's
// internal auto-indexes.
func (r *Repository) IndexNames(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND name NOT LIKE 'sqlite_autoindex%' ORDER BY name", table,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: indexes for %s: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("sqlite: scan index name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// sqlIdent double-quotes an identifier for safe interpolation into SQL.
func sqlIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
