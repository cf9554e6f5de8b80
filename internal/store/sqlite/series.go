package sqlite

import (
	"context"
	"strings"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

// seriesColumns is the ordered list of columns selected in series queries.
// Must match the scan order in scanSeries.
const seriesColumns = `id, created_at, updated_at, library_id, name`

// scanSeries scans a sql.Row (or sql.Rows via its Scan method) into a domain.Series.
func scanSeries(scanner rowScanner) (*domain.Series, error) {
	var ser domain.Series

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&ser.ID,
		&createdAt,
		&updatedAt,
		&ser.LibraryID,
		&ser.Name,
	)
	if err != nil {
		return nil, err
	}

	ser.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	ser.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &ser, nil
}

func seriesTable() *table[*domain.Series] {
	return &table[*domain.Series]{
		name:    "series",
		columns: seriesColumns,
		scan:    scanSeries,
		insertArgs: func(ser *domain.Series) []any {
			return []any{ser.ID, formatTime(ser.CreatedAt), formatTime(ser.UpdatedAt), ser.LibraryID, ser.Name}
		},
		// library_id is immutable after creation and stays out of the SET clause.
		updateSet: `name = ?`,
		updateArgs: func(ser *domain.Series) []any {
			return []any{ser.Name}
		},
	}
}

// CreateSeries inserts a new series.
// Returns store.ErrAlreadyExists on duplicate ID and store.ErrConstraint when
// the referenced library does not exist.
func (s *Store) CreateSeries(ctx context.Context, ser *domain.Series) error {
	return s.series.insert(ctx, s.db, ser)
}

// UpdateSeries performs a full row update on an existing series.
// The library assignment is never changed by an update.
// Returns store.ErrNotFound if the series does not exist.
func (s *Store) UpdateSeries(ctx context.Context, ser *domain.Series) error {
	return s.series.update(ctx, s.db, ser)
}

// FindSeriesByID retrieves a series by ID.
// Returns nil and a nil error when the series does not exist.
func (s *Store) FindSeriesByID(ctx context.Context, id string) (*domain.Series, error) {
	return s.series.findByID(ctx, s.db, id)
}

// ListSeries returns all series ordered by creation time.
func (s *Store) ListSeries(ctx context.Context) ([]*domain.Series, error) {
	return s.series.findAll(ctx, s.db)
}

// CountSeries returns the total number of series.
func (s *Store) CountSeries(ctx context.Context) (int, error) {
	return s.series.count(ctx, s.db)
}

// DeleteSeries deletes a series; its books and their metadata go with it via
// the declared cascades.
// Returns store.ErrNotFound if the series does not exist.
func (s *Store) DeleteSeries(ctx context.Context, id string) error {
	return s.series.delete(ctx, s.db, id)
}

// DeleteAllSeries removes every series, cascading to all books.
// Safe to call on an empty store.
func (s *Store) DeleteAllSeries(ctx context.Context) error {
	return s.series.deleteAll(ctx, s.db)
}

// SearchSeries returns the series matching every populated dimension of the
// given filter. An empty filter returns all series.
func (s *Store) SearchSeries(ctx context.Context, search store.SeriesSearch) ([]*domain.Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series`

	var (
		where []string
		args  []any
	)
	if len(search.LibraryIDs) > 0 {
		where = append(where, `library_id IN (`+placeholders(len(search.LibraryIDs))+`)`)
		for _, id := range search.LibraryIDs {
			args = append(args, id)
		}
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []*domain.Series
	for rows.Next() {
		ser, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		series = append(series, ser)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return series, nil
}
