package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// table provides generic CRUD over one entity kind. Each entity file supplies
// a descriptor with its column list, scan function, and argument builders;
// the timestamp discipline lives here: insert stamps both audit times, update
// refreshes updated_at and never writes created_at, so the stored value wins.
type table[T domain.Entity] struct {
	name    string
	columns string // full select/insert list: id, created_at, updated_at, rest

	scan       func(rowScanner) (T, error)
	insertArgs func(T) []any // values in columns order
	updateSet  string        // SET clause, excludes id, created_at, and updated_at
	updateArgs func(T) []any // values in updateSet order
}

// insert stamps the entity's audit timestamps and writes one row.
// Returns store.ErrAlreadyExists on duplicate ID and store.ErrConstraint when
// a referenced parent row is missing.
func (t *table[T]) insert(ctx context.Context, db execer, e T) error {
	e.InitTimestamps()

	query := `INSERT INTO ` + t.name + ` (` + t.columns + `) VALUES (` +
		placeholders(strings.Count(t.columns, ",")+1) + `)`
	if _, err := db.ExecContext(ctx, query, t.insertArgs(e)...); err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// update refreshes updated_at and replaces every mutable column. The entity's
// in-memory UpdatedAt is stamped only after the write succeeds, so a failed
// update leaves the caller's value untouched.
// Returns store.ErrNotFound if no row with the entity's ID exists.
func (t *table[T]) update(ctx context.Context, db execer, e T) error {
	now := time.Now()

	args := append([]any{formatTime(now)}, t.updateArgs(e)...)
	args = append(args, e.EntityID())
	result, err := db.ExecContext(ctx,
		`UPDATE `+t.name+` SET updated_at = ?, `+t.updateSet+` WHERE id = ?`, args...)
	if err != nil {
		return mapConstraintErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	e.SetUpdatedAt(now)
	return nil
}

// findByID returns the stored entity, or the zero value and a nil error when
// no row exists. Absence is not an error here; see the metadata store for the
// deliberate exception.
func (t *table[T]) findByID(ctx context.Context, db *sql.DB, id string) (T, error) {
	var zero T

	row := db.QueryRowContext(ctx,
		`SELECT `+t.columns+` FROM `+t.name+` WHERE id = ?`, id)

	e, err := t.scan(row)
	if err == sql.ErrNoRows {
		return zero, nil
	}
	if err != nil {
		return zero, err
	}
	return e, nil
}

// findAll returns every row ordered by creation time.
func (t *table[T]) findAll(ctx context.Context, db *sql.DB) ([]T, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+t.columns+` FROM `+t.name+` ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []T
	for rows.Next() {
		e, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

// count returns the number of stored rows.
func (t *table[T]) count(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t.name).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// delete removes one row by ID.
// Returns store.ErrNotFound if no such row exists.
func (t *table[T]) delete(ctx context.Context, db execer, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM `+t.name+` WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// deleteAll removes every row. Safe on an empty table.
func (t *table[T]) deleteAll(ctx context.Context, db execer) error {
	_, err := db.ExecContext(ctx, `DELETE FROM `+t.name)
	return err
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
