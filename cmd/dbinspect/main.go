// Package main provides a tool to inspect a shelfkeep database.
//
// It prints entity counts, a per-library breakdown, and a few sample books
// with their metadata.
//
// Usage:
//
//	DATABASE_PATH=~/Shelfkeep/shelfkeep.db go run ./cmd/dbinspect
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/shelfkeep/shelfkeep-server/internal/store"
	"github.com/shelfkeep/shelfkeep-server/internal/store/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Shelfkeep", "shelfkeep.db")
	}

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	fmt.Println("=== Database Inspection ===")
	fmt.Printf("Path: %s\n\n", dbPath)

	libraryCount, err := s.CountLibraries(ctx)
	if err != nil {
		log.Fatalf("Failed to count libraries: %v", err)
	}
	seriesCount, err := s.CountSeries(ctx)
	if err != nil {
		log.Fatalf("Failed to count series: %v", err)
	}
	bookCount, err := s.CountBooks(ctx)
	if err != nil {
		log.Fatalf("Failed to count books: %v", err)
	}

	fmt.Printf("Libraries: %d\n", libraryCount)
	fmt.Printf("Series:    %d\n", seriesCount)
	fmt.Printf("Books:     %d\n", bookCount)
	fmt.Println()

	libraries, err := s.ListLibraries(ctx)
	if err != nil {
		log.Fatalf("Failed to list libraries: %v", err)
	}

	for _, lib := range libraries {
		bookIDs, err := s.FindBookIDsByLibraryID(ctx, lib.ID)
		if err != nil {
			log.Fatalf("Failed to list books for library %s: %v", lib.ID, err)
		}
		allSeries, err := s.SearchSeries(ctx, store.SeriesSearch{LibraryIDs: []string{lib.ID}})
		if err != nil {
			log.Fatalf("Failed to list series for library %s: %v", lib.ID, err)
		}

		fmt.Printf("Library: %s (%s)\n", lib.Name, lib.ID)
		fmt.Printf("  Series: %d\n", len(allSeries))
		fmt.Printf("  Books:  %d\n", len(bookIDs))

		// Show a few sample books with their metadata.
		shown := 0
		for _, bookID := range bookIDs {
			if shown >= 3 {
				fmt.Printf("  ... and %d more\n", len(bookIDs)-shown)
				break
			}
			book, err := s.FindBookByID(ctx, bookID)
			if err != nil {
				log.Fatalf("Failed to load book %s: %v", bookID, err)
			}
			if book == nil {
				continue
			}

			fmt.Printf("  Book: %s\n", book.Name)
			fmt.Printf("    ID:   %s\n", book.ID)
			fmt.Printf("    Size: %d bytes\n", book.FileSize)

			meta, err := s.GetBookMetadata(ctx, book.ID)
			switch {
			case errors.Is(err, store.ErrNotFound):
				fmt.Printf("    Metadata: none\n")
			case err != nil:
				log.Fatalf("Failed to load metadata for %s: %v", book.ID, err)
			default:
				fmt.Printf("    Title:   %s\n", meta.Title)
				if meta.Number != "" {
					fmt.Printf("    Number:  %s (sort %g)\n", meta.Number, meta.NumberSort)
				}
				if len(meta.Authors) > 0 {
					names := make([]string, 0, len(meta.Authors))
					for _, a := range meta.Authors {
						names = append(names, a.Name)
					}
					fmt.Printf("    Authors: %s\n", strings.Join(names, ", "))
				}
				if len(meta.Tags) > 0 {
					fmt.Printf("    Tags:    %s\n", strings.Join(meta.Tags, ", "))
				}
			}
			shown++
		}
		fmt.Println()
	}
}
