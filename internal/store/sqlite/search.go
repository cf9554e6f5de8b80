package sqlite

import (
	"context"
	"strings"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

// bookSearchPredicates builds the WHERE fragments for a store.BookSearch.
// Each populated dimension contributes one IN predicate; empty dimensions are
// skipped entirely. Fragments combine with AND at the call site.
func bookSearchPredicates(search store.BookSearch) ([]string, []any) {
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
	if len(search.SeriesIDs) > 0 {
		where = append(where, `series_id IN (`+placeholders(len(search.SeriesIDs))+`)`)
		for _, id := range search.SeriesIDs {
			args = append(args, id)
		}
	}

	return where, args
}

// SearchBooks returns the books matching every populated dimension of the
// given filter. An empty filter returns all books.
func (s *Store) SearchBooks(ctx context.Context, search store.BookSearch) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`

	where, args := bookSearchPredicates(search)
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// FindBookIDsByLibraryID returns the IDs of all books under a library.
// This is the light-weight path for existence and reconciliation checks.
func (s *Store) FindBookIDsByLibraryID(ctx context.Context, libraryID string) ([]string, error) {
	return s.queryBookIDs(ctx, `SELECT id FROM books WHERE library_id = ?`, libraryID)
}

// FindBookIDsBySeriesID returns the IDs of all books in a series.
func (s *Store) FindBookIDsBySeriesID(ctx context.Context, seriesID string) ([]string, error) {
	return s.queryBookIDs(ctx, `SELECT id FROM books WHERE series_id = ?`, seriesID)
}

func (s *Store) queryBookIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
