package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

func TestCreateAndFindLibrary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lib := makeTestLibrary("lib-1", "Comics")
	if err := s.CreateLibrary(ctx, lib); err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}

	got, err := s.FindLibraryByID(ctx, "lib-1")
	if err != nil {
		t.Fatalf("FindLibraryByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected library, got nil")
	}

	if got.ID != lib.ID {
		t.Errorf("ID: got %q, want %q", got.ID, lib.ID)
	}
	if got.Name != lib.Name {
		t.Errorf("Name: got %q, want %q", got.Name, lib.Name)
	}

	// Insert stamps both audit timestamps.
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("expected audit timestamps to be set on insert")
	}
	if got.CreatedAt.Unix() != lib.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, lib.CreatedAt)
	}
}

func TestFindLibraryByID_Absent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.FindLibraryByID(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("expected nil error for absent library, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil library, got %+v", got)
	}
}

func TestCreateLibrary_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateLibrary(ctx, makeTestLibrary("lib-dup", "One")); err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}

	err := s.CreateLibrary(ctx, makeTestLibrary("lib-dup", "Two"))
	if err == nil {
		t.Fatal("expected error for duplicate ID, got nil")
	}
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Prior state is unchanged.
	got, err := s.FindLibraryByID(ctx, "lib-dup")
	if err != nil {
		t.Fatalf("FindLibraryByID: %v", err)
	}
	if got.Name != "One" {
		t.Errorf("Name after failed insert: got %q, want %q", got.Name, "One")
	}
}

func TestUpdateLibrary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lib := makeTestLibrary("lib-upd", "Before")
	if err := s.CreateLibrary(ctx, lib); err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}
	created := lib.CreatedAt
	prevUpdated := lib.UpdatedAt

	lib.Name = "After"
	// A tampered CreatedAt must not reach storage.
	lib.CreatedAt = created.AddDate(-10, 0, 0)
	if err := s.UpdateLibrary(ctx, lib); err != nil {
		t.Fatalf("UpdateLibrary: %v", err)
	}

	got, err := s.FindLibraryByID(ctx, "lib-upd")
	if err != nil {
		t.Fatalf("FindLibraryByID: %v", err)
	}
	if got.Name != "After" {
		t.Errorf("Name: got %q, want %q", got.Name, "After")
	}
	if !got.CreatedAt.Equal(created.UTC()) {
		t.Errorf("CreatedAt changed on update: got %v, want %v", got.CreatedAt, created.UTC())
	}
	if !got.UpdatedAt.After(prevUpdated) {
		t.Errorf("UpdatedAt did not advance: got %v, prev %v", got.UpdatedAt, prevUpdated)
	}
}

func TestUpdateLibrary_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lib := makeTestLibrary("lib-missing", "Ghost")
	lib.InitTimestamps()
	prevUpdated := lib.UpdatedAt

	err := s.UpdateLibrary(ctx, lib)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// A failed update leaves the caller's entity untouched.
	if !lib.UpdatedAt.Equal(prevUpdated) {
		t.Errorf("UpdatedAt changed on failed update: got %v, want %v", lib.UpdatedAt, prevUpdated)
	}
}

func TestListAndCountLibraries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"lib-a", "lib-b", "lib-c"} {
		if err := s.CreateLibrary(ctx, makeTestLibrary(id, "Library "+id)); err != nil {
			t.Fatalf("CreateLibrary(%s): %v", id, err)
		}
	}

	libraries, err := s.ListLibraries(ctx)
	if err != nil {
		t.Fatalf("ListLibraries: %v", err)
	}
	if len(libraries) != 3 {
		t.Fatalf("expected 3 libraries, got %d", len(libraries))
	}

	count, err := s.CountLibraries(ctx)
	if err != nil {
		t.Fatalf("CountLibraries: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}

func TestDeleteLibrary_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	createTestHierarchy(t, s, "lib-del", "ser-del")
	book := makeTestBook("bok-del", "ser-del", "lib-del", "Volume 1")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	meta := &domain.BookMetadata{BookID: "bok-del", Title: "Volume 1", Number: "1"}
	if err := s.CreateBookMetadata(ctx, meta); err != nil {
		t.Fatalf("CreateBookMetadata: %v", err)
	}

	if err := s.DeleteLibrary(ctx, "lib-del"); err != nil {
		t.Fatalf("DeleteLibrary: %v", err)
	}

	for name, countFn := range map[string]func(context.Context) (int, error){
		"series": s.CountSeries,
		"books":  s.CountBooks,
	} {
		n, err := countFn(ctx)
		if err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Errorf("expected 0 %s after library delete, got %d", name, n)
		}
	}

	if _, err := s.GetBookMetadata(ctx, "bok-del"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected metadata to cascade, got %v", err)
	}
}

func TestDeleteAllLibraries_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateLibrary(ctx, makeTestLibrary("lib-x", "X")); err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}

	if err := s.DeleteAllLibraries(ctx); err != nil {
		t.Fatalf("DeleteAllLibraries: %v", err)
	}
	count, err := s.CountLibraries(ctx)
	if err != nil {
		t.Fatalf("CountLibraries: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 libraries, got %d", count)
	}

	// Second call on an empty store must not error.
	if err := s.DeleteAllLibraries(ctx); err != nil {
		t.Fatalf("DeleteAllLibraries on empty store: %v", err)
	}
}
