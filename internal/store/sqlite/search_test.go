package sqlite

import (
	"context"
	"slices"
	"testing"

	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

// seedSearchFixture creates two libraries with one series each, one series
// holding two books and the other one.
func seedSearchFixture(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	createTestHierarchy(t, s, "lib-1", "ser-1")
	createTestHierarchy(t, s, "lib-2", "ser-2")

	for _, id := range []string{"bok-1", "bok-2"} {
		if err := s.CreateBook(ctx, makeTestBook(id, "ser-1", "lib-1", "Book "+id)); err != nil {
			t.Fatalf("CreateBook(%s): %v", id, err)
		}
	}
	if err := s.CreateBook(ctx, makeTestBook("bok-3", "ser-2", "lib-2", "Book 3")); err != nil {
		t.Fatalf("CreateBook(bok-3): %v", err)
	}
}

func TestSearchBooks_EmptyFilter(t *testing.T) {
	s := newTestStore(t)
	seedSearchFixture(t, s)

	books, err := s.SearchBooks(context.Background(), store.BookSearch{})
	if err != nil {
		t.Fatalf("SearchBooks: %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("expected 3 books for empty filter, got %d", len(books))
	}
}

func TestSearchBooks_ByLibrary(t *testing.T) {
	s := newTestStore(t)
	seedSearchFixture(t, s)

	books, err := s.SearchBooks(context.Background(), store.BookSearch{
		LibraryIDs: []string{"lib-1"},
	})
	if err != nil {
		t.Fatalf("SearchBooks: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	for _, b := range books {
		if b.LibraryID != "lib-1" {
			t.Errorf("book %s has library %s, want lib-1", b.ID, b.LibraryID)
		}
	}
}

func TestSearchBooks_DimensionsAreANDed(t *testing.T) {
	s := newTestStore(t)
	seedSearchFixture(t, s)

	// Library and series agree: both books of ser-1.
	books, err := s.SearchBooks(context.Background(), store.BookSearch{
		LibraryIDs: []string{"lib-1"},
		SeriesIDs:  []string{"ser-1"},
	})
	if err != nil {
		t.Fatalf("SearchBooks: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}

	// Library and series disagree: no intersection.
	books, err = s.SearchBooks(context.Background(), store.BookSearch{
		LibraryIDs: []string{"lib-1"},
		SeriesIDs:  []string{"ser-2"},
	})
	if err != nil {
		t.Fatalf("SearchBooks: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("expected 0 books for disjoint filter, got %d", len(books))
	}
}

func TestSearchBooks_MultipleValuesPerDimension(t *testing.T) {
	s := newTestStore(t)
	seedSearchFixture(t, s)

	books, err := s.SearchBooks(context.Background(), store.BookSearch{
		SeriesIDs: []string{"ser-1", "ser-2"},
	})
	if err != nil {
		t.Fatalf("SearchBooks: %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("expected 3 books across both series, got %d", len(books))
	}
}

func TestFindBookIDsByLibraryID(t *testing.T) {
	s := newTestStore(t)
	seedSearchFixture(t, s)

	ids, err := s.FindBookIDsByLibraryID(context.Background(), "lib-1")
	if err != nil {
		t.Fatalf("FindBookIDsByLibraryID: %v", err)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []string{"bok-1", "bok-2"}) {
		t.Errorf("got %v, want [bok-1 bok-2]", ids)
	}
}

func TestFindBookIDsBySeriesID(t *testing.T) {
	s := newTestStore(t)
	seedSearchFixture(t, s)

	ids, err := s.FindBookIDsBySeriesID(context.Background(), "ser-2")
	if err != nil {
		t.Fatalf("FindBookIDsBySeriesID: %v", err)
	}
	if !slices.Equal(ids, []string{"bok-3"}) {
		t.Errorf("got %v, want [bok-3]", ids)
	}

	ids, err = s.FindBookIDsBySeriesID(context.Background(), "ser-ghost")
	if err != nil {
		t.Fatalf("FindBookIDsBySeriesID: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no ids for unknown series, got %v", ids)
	}
}
