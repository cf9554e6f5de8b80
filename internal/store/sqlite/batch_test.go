package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

func makeBatchBooks(n int) []*domain.Book {
	books := make([]*domain.Book, 0, n)
	for i := 0; i < n; i++ {
		b := makeTestBook(fmt.Sprintf("bok-%d", i), "ser-1", "lib-1", fmt.Sprintf("Book %d", i))
		b.FileSize = int64(1000 + i)
		books = append(books, b)
	}
	return books
}

func TestBulkCreateBooks_StrategiesEquivalent(t *testing.T) {
	strategies := []store.BatchStrategy{
		store.BatchSequential,
		store.BatchGrouped,
		store.BatchTransaction,
	}

	for _, strategy := range strategies {
		t.Run(strategy.String(), func(t *testing.T) {
			s := newTestStore(t)
			ctx := context.Background()
			createTestHierarchy(t, s, "lib-1", "ser-1")

			if err := s.BulkCreateBooks(ctx, makeBatchBooks(10), strategy); err != nil {
				t.Fatalf("BulkCreateBooks(%s): %v", strategy, err)
			}

			count, err := s.CountBooks(ctx)
			if err != nil {
				t.Fatalf("CountBooks: %v", err)
			}
			if count != 10 {
				t.Fatalf("expected 10 books, got %d", count)
			}

			// Field values are identical regardless of strategy.
			for i := 0; i < 10; i++ {
				id := fmt.Sprintf("bok-%d", i)
				got, err := s.FindBookByID(ctx, id)
				if err != nil {
					t.Fatalf("FindBookByID(%s): %v", id, err)
				}
				if got == nil {
					t.Fatalf("book %s missing", id)
				}
				if got.Name != fmt.Sprintf("Book %d", i) {
					t.Errorf("%s Name: got %q", id, got.Name)
				}
				if got.FileSize != int64(1000+i) {
					t.Errorf("%s FileSize: got %d, want %d", id, got.FileSize, 1000+i)
				}
				if got.CreatedAt.IsZero() {
					t.Errorf("%s CreatedAt not stamped", id)
				}
			}
		})
	}
}

func TestBulkCreateBooks_Empty(t *testing.T) {
	s := newTestStore(t)
	if err := s.BulkCreateBooks(context.Background(), nil, store.BatchGrouped); err != nil {
		t.Fatalf("BulkCreateBooks(nil): %v", err)
	}
}

func TestBulkCreateBooks_UnknownStrategy(t *testing.T) {
	s := newTestStore(t)
	err := s.BulkCreateBooks(context.Background(), makeBatchBooks(1), store.BatchStrategy(42))
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBulkCreateBooks_TransactionRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestHierarchy(t, s, "lib-1", "ser-1")

	books := makeBatchBooks(5)
	books[4].ID = books[0].ID // forces a duplicate-ID failure at the end

	err := s.BulkCreateBooks(ctx, books, store.BatchTransaction)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Full rollback: nothing from the batch is visible.
	count, err := s.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 books after rollback, got %d", count)
	}
}

func TestBulkCreateBooks_SequentialKeepsEarlierRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestHierarchy(t, s, "lib-1", "ser-1")

	books := makeBatchBooks(5)
	books[4].ID = books[0].ID

	err := s.BulkCreateBooks(ctx, books, store.BatchSequential)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Sequential autocommits per row, so the rows before the failure stay.
	count, err := s.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 books after mid-batch failure, got %d", count)
	}
}

func TestBulkCreateBooks_GroupedIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestHierarchy(t, s, "lib-1", "ser-1")

	books := makeBatchBooks(5)
	books[4].ID = books[0].ID

	err := s.BulkCreateBooks(ctx, books, store.BatchGrouped)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	count, err := s.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 books after failed grouped insert, got %d", count)
	}
}
