package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

// metadataColumns is the ordered list of columns selected in metadata queries.
// Must match the scan order in scanBookMetadata.
const metadataColumns = `book_id, created_at, updated_at, title, summary,
	number, number_sort, release_date,
	title_lock, summary_lock, number_lock, number_sort_lock,
	release_date_lock, authors_lock, tags_lock`

// scanBookMetadata scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.BookMetadata. Authors and tags are loaded separately.
func scanBookMetadata(scanner rowScanner) (*domain.BookMetadata, error) {
	var m domain.BookMetadata

	var (
		createdAt   string
		updatedAt   string
		releaseDate sql.NullString

		titleLock       int
		summaryLock     int
		numberLock      int
		numberSortLock  int
		releaseDateLock int
		authorsLock     int
		tagsLock        int
	)

	err := scanner.Scan(
		&m.BookID,
		&createdAt,
		&updatedAt,
		&m.Title,
		&m.Summary,
		&m.Number,
		&m.NumberSort,
		&releaseDate,
		&titleLock,
		&summaryLock,
		&numberLock,
		&numberSortLock,
		&releaseDateLock,
		&authorsLock,
		&tagsLock,
	)
	if err != nil {
		return nil, err
	}

	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	m.ReleaseDate, err = parseNullableDate(releaseDate)
	if err != nil {
		return nil, err
	}

	m.Locks = domain.MetadataLocks{
		Title:       titleLock != 0,
		Summary:     summaryLock != 0,
		Number:      numberLock != 0,
		NumberSort:  numberSortLock != 0,
		ReleaseDate: releaseDateLock != 0,
		Authors:     authorsLock != 0,
		Tags:        tagsLock != 0,
	}

	return &m, nil
}

// metadataScalarArgs returns the SQL arguments for every column after the
// audit timestamps, in metadataColumns order.
func metadataScalarArgs(m *domain.BookMetadata) []any {
	return []any{
		m.Title,
		m.Summary,
		m.Number,
		m.NumberSort,
		nullDateString(m.ReleaseDate),
		boolToInt(m.Locks.Title),
		boolToInt(m.Locks.Summary),
		boolToInt(m.Locks.Number),
		boolToInt(m.Locks.NumberSort),
		boolToInt(m.Locks.ReleaseDate),
		boolToInt(m.Locks.Authors),
		boolToInt(m.Locks.Tags),
	}
}

// insertMetadataAuthors writes the ordered author rows within a transaction.
// The position column preserves the caller's ordering across round-trips.
func insertMetadataAuthors(ctx context.Context, tx *sql.Tx, bookID string, authors []domain.Author) error {
	for i, a := range authors {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO book_metadata_authors (book_id, position, name, role)
			VALUES (?, ?, ?, ?)`,
			bookID, i, a.Name, a.Role,
		)
		if err != nil {
			return fmt.Errorf("insert author %d: %w", i, mapConstraintErr(err))
		}
	}
	return nil
}

// insertMetadataTags writes the tag rows within a transaction.
func insertMetadataTags(ctx context.Context, tx *sql.Tx, bookID string, tags []string) error {
	for _, tag := range tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO book_metadata_tags (book_id, value)
			VALUES (?, ?)`,
			bookID, tag,
		)
		if err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, mapConstraintErr(err))
		}
	}
	return nil
}

// CreateBookMetadata inserts a metadata row with its authors and tags in one
// transaction; either all of it becomes visible or none of it does.
// Returns store.ErrConstraint when the referenced book does not exist and
// store.ErrAlreadyExists when metadata for the book is already present.
func (s *Store) CreateBookMetadata(ctx context.Context, m *domain.BookMetadata) error {
	m.InitTimestamps()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	args := append([]any{m.BookID, formatTime(m.CreatedAt), formatTime(m.UpdatedAt)},
		metadataScalarArgs(m)...)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO book_metadata (`+metadataColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return mapConstraintErr(err)
	}

	if err := insertMetadataAuthors(ctx, tx, m.BookID, m.Authors); err != nil {
		return err
	}
	if err := insertMetadataTags(ctx, tx, m.BookID, m.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateBookMetadata replaces all scalar fields and lock flags, and fully
// deletes and re-inserts both authors and tags, in one transaction. The
// stored sub-collections always match the caller's snapshot exactly. The
// in-memory UpdatedAt is stamped only after the transaction commits.
// Returns store.ErrNotFound if no metadata exists for the book.
func (s *Store) UpdateBookMetadata(ctx context.Context, m *domain.BookMetadata) error {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	args := append([]any{formatTime(now)}, metadataScalarArgs(m)...)
	args = append(args, m.BookID)
	result, err := tx.ExecContext(ctx, `
		UPDATE book_metadata SET
			updated_at = ?, title = ?, summary = ?,
			number = ?, number_sort = ?, release_date = ?,
			title_lock = ?, summary_lock = ?, number_lock = ?,
			number_sort_lock = ?, release_date_lock = ?,
			authors_lock = ?, tags_lock = ?
		WHERE book_id = ?`,
		args...,
	)
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_metadata_authors WHERE book_id = ?`, m.BookID); err != nil {
		return fmt.Errorf("delete authors: %w", err)
	}
	if err := insertMetadataAuthors(ctx, tx, m.BookID, m.Authors); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_metadata_tags WHERE book_id = ?`, m.BookID); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	if err := insertMetadataTags(ctx, tx, m.BookID, m.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	m.SetUpdatedAt(now)
	return nil
}

// GetBookMetadata retrieves the metadata for a book, authors in stored order
// and tags included. The scalar row and both sub-collections are read inside
// one transaction so a concurrent update can never produce a torn snapshot.
// Unlike the entity lookups, a missing row here is a store.ErrNotFound:
// metadata always exists for a book created through the normal ingestion
// path, so absence signals a data-integrity problem.
func (s *Store) GetBookMetadata(ctx context.Context, bookID string) (*domain.BookMetadata, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+metadataColumns+` FROM book_metadata WHERE book_id = ?`, bookID)

	m, err := scanBookMetadata(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	m.Authors, err = loadMetadataAuthors(ctx, tx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	m.Tags, err = loadMetadataTags(ctx, tx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteBookMetadata removes the metadata row and its sub-collections.
// Idempotent: deleting metadata that does not exist is a success, since
// callers invoke this opportunistically during book teardown.
func (s *Store) DeleteBookMetadata(ctx context.Context, bookID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_metadata_authors WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("delete authors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_metadata_tags WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_metadata WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("delete metadata: %w", err)
	}

	return tx.Commit()
}

// loadMetadataAuthors loads the author rows for a book in position order,
// within the caller's transaction.
// Returns an empty slice, not nil, when there are none.
func loadMetadataAuthors(ctx context.Context, tx *sql.Tx, bookID string) ([]domain.Author, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT name, role FROM book_metadata_authors
		WHERE book_id = ?
		ORDER BY position ASC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []domain.Author{}
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.Name, &a.Role); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// loadMetadataTags loads the tag values for a book within the caller's
// transaction.
// Returns an empty slice, not nil, when there are none.
func loadMetadataTags(ctx context.Context, tx *sql.Tx, bookID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT value FROM book_metadata_tags WHERE book_id = ?`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
