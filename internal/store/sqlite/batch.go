package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

// BulkCreateBooks inserts many books using the chosen strategy. All
// strategies leave the store in an identical state; they trade round trips
// and commit frequency against each other. A failed bulk insert with the
// grouped or transaction strategy leaves the store unchanged.
func (s *Store) BulkCreateBooks(ctx context.Context, books []*domain.Book, strategy store.BatchStrategy) error {
	if len(books) == 0 {
		return nil
	}

	batchID := uuid.NewString()
	start := time.Now()

	var err error
	switch strategy {
	case store.BatchSequential:
		err = s.bulkCreateSequential(ctx, books)
	case store.BatchGrouped:
		err = s.bulkCreateGrouped(ctx, books)
	case store.BatchTransaction:
		err = s.bulkCreateTransaction(ctx, books)
	default:
		return store.ErrInvalidInput.WithCause(fmt.Errorf("unknown batch strategy %d", int(strategy)))
	}
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Debug("bulk insert complete",
			"batch_id", batchID,
			"strategy", strategy.String(),
			"count", len(books),
			"duration", time.Since(start),
		)
	}
	return nil
}

// bulkCreateSequential issues one autocommitted insert per book.
func (s *Store) bulkCreateSequential(ctx context.Context, books []*domain.Book) error {
	for _, b := range books {
		if err := s.books.insert(ctx, s.db, b); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ID, err)
		}
	}
	return nil
}

// bulkCreateGrouped sends all rows in one multi-row INSERT.
func (s *Store) bulkCreateGrouped(ctx context.Context, books []*domain.Book) error {
	columnCount := strings.Count(s.books.columns, ",") + 1
	row := `(` + placeholders(columnCount) + `)`

	values := make([]string, 0, len(books))
	args := make([]any, 0, len(books)*columnCount)
	for _, b := range books {
		b.InitTimestamps()
		values = append(values, row)
		args = append(args, s.books.insertArgs(b)...)
	}

	query := `INSERT INTO books (` + s.books.columns + `) VALUES ` + strings.Join(values, ", ")
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// bulkCreateTransaction wraps every insert in one transaction with a single
// commit at the end.
func (s *Store) bulkCreateTransaction(ctx context.Context, books []*domain.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, b := range books {
		if err := s.books.insert(ctx, tx, b); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}
