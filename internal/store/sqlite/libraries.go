package sqlite

import (
	"context"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
)

// libraryColumns is the ordered list of columns selected in library queries.
// Must match the scan order in scanLibrary.
const libraryColumns = `id, created_at, updated_at, name`

// scanLibrary scans a sql.Row (or sql.Rows via its Scan method) into a domain.Library.
func scanLibrary(scanner rowScanner) (*domain.Library, error) {
	var lib domain.Library

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&lib.ID,
		&createdAt,
		&updatedAt,
		&lib.Name,
	)
	if err != nil {
		return nil, err
	}

	lib.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	lib.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &lib, nil
}

func libraryTable() *table[*domain.Library] {
	return &table[*domain.Library]{
		name:    "libraries",
		columns: libraryColumns,
		scan:    scanLibrary,
		insertArgs: func(lib *domain.Library) []any {
			return []any{lib.ID, formatTime(lib.CreatedAt), formatTime(lib.UpdatedAt), lib.Name}
		},
		updateSet: `name = ?`,
		updateArgs: func(lib *domain.Library) []any {
			return []any{lib.Name}
		},
	}
}

// CreateLibrary inserts a new library.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateLibrary(ctx context.Context, lib *domain.Library) error {
	return s.libraries.insert(ctx, s.db, lib)
}

// UpdateLibrary performs a full row update on an existing library.
// Returns store.ErrNotFound if the library does not exist.
func (s *Store) UpdateLibrary(ctx context.Context, lib *domain.Library) error {
	return s.libraries.update(ctx, s.db, lib)
}

// FindLibraryByID retrieves a library by ID.
// Returns nil and a nil error when the library does not exist.
func (s *Store) FindLibraryByID(ctx context.Context, id string) (*domain.Library, error) {
	return s.libraries.findByID(ctx, s.db, id)
}

// ListLibraries returns all libraries ordered by creation time.
func (s *Store) ListLibraries(ctx context.Context) ([]*domain.Library, error) {
	return s.libraries.findAll(ctx, s.db)
}

// CountLibraries returns the total number of libraries.
func (s *Store) CountLibraries(ctx context.Context) (int, error) {
	return s.libraries.count(ctx, s.db)
}

// DeleteLibrary deletes a library. Series, books, and metadata under it are
// removed by the declared cascades.
// Returns store.ErrNotFound if the library does not exist.
func (s *Store) DeleteLibrary(ctx context.Context, id string) error {
	return s.libraries.delete(ctx, s.db, id)
}

// DeleteAllLibraries removes every library, cascading to all series and books.
// Safe to call on an empty store.
func (s *Store) DeleteAllLibraries(ctx context.Context) error {
	return s.libraries.deleteAll(ctx, s.db)
}
