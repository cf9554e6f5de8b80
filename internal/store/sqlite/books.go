package sqlite

import (
	"context"
	"database/sql"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, series_id, library_id,
	name, url, file_size, file_last_modified`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner rowScanner) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt string
		updatedAt string
		fileMod   string
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.SeriesID,
		&b.LibraryID,
		&b.Name,
		&b.URL,
		&b.FileSize,
		&fileMod,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	b.FileLastModified, err = parseTime(fileMod)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func bookTable() *table[*domain.Book] {
	return &table[*domain.Book]{
		name:    "books",
		columns: bookColumns,
		scan:    scanBook,
		insertArgs: func(b *domain.Book) []any {
			return []any{
				b.ID,
				formatTime(b.CreatedAt),
				formatTime(b.UpdatedAt),
				b.SeriesID,
				b.LibraryID,
				b.Name,
				b.URL,
				b.FileSize,
				formatTime(b.FileLastModified),
			}
		},
		updateSet: `series_id = ?, library_id = ?,
			name = ?, url = ?, file_size = ?, file_last_modified = ?`,
		updateArgs: func(b *domain.Book) []any {
			return []any{
				b.SeriesID,
				b.LibraryID,
				b.Name,
				b.URL,
				b.FileSize,
				formatTime(b.FileLastModified),
			}
		},
	}
}

// CreateBook inserts a new book.
// Returns store.ErrAlreadyExists on duplicate ID and store.ErrConstraint when
// the referenced series or library does not exist.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	return s.books.insert(ctx, s.db, b)
}

// UpdateBook performs a full row update on an existing book.
// created_at is carried over from storage, never from the caller's value.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	return s.books.update(ctx, s.db, b)
}

// FindBookByID retrieves a book by ID.
// Returns nil and a nil error when the book does not exist.
func (s *Store) FindBookByID(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.findByID(ctx, s.db, id)
}

// ListBooks returns all books ordered by creation time.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.books.findAll(ctx, s.db)
}

// CountBooks returns the total number of books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	return s.books.count(ctx, s.db)
}

// CountBooksBySeriesID returns the number of books in one series.
func (s *Store) CountBooksBySeriesID(ctx context.Context, seriesID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE series_id = ?`, seriesID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// BookExists checks if a book exists by ID without materializing the row.
func (s *Store) BookExists(ctx context.Context, id string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM books WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteBook deletes a book and, via the declared cascade, its metadata.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	return s.books.delete(ctx, s.db, id)
}

// DeleteAllBooks removes every book and all dependent metadata rows.
// Safe to call on an empty store.
func (s *Store) DeleteAllBooks(ctx context.Context) error {
	return s.books.deleteAll(ctx, s.db)
}
