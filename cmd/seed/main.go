// Package main provides a tool to seed the database with test media data.
//
// It creates libraries, series, and books with metadata so search, counting,
// and batch-insert behavior can be exercised against a realistic dataset.
//
// Usage:
//
//	go run ./cmd/seed -db-path ~/Shelfkeep/shelfkeep.db
//	go run ./cmd/seed -libraries 2 -series 5 -books 20 -batch-strategy grouped
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/samber/do/v2"

	"github.com/shelfkeep/shelfkeep-server/internal/config"
	"github.com/shelfkeep/shelfkeep-server/internal/di"
	"github.com/shelfkeep/shelfkeep-server/internal/di/providers"
	"github.com/shelfkeep/shelfkeep-server/internal/domain"
	"github.com/shelfkeep/shelfkeep-server/internal/id"
	"github.com/shelfkeep/shelfkeep-server/internal/logger"
	"github.com/shelfkeep/shelfkeep-server/internal/store"
)

var (
	environment   = flag.String("env", "", "Environment (development, staging, production)")
	logLevel      = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	databasePath  = flag.String("db-path", "", "Path to the SQLite database file")
	batchStrategy = flag.String("batch-strategy", "", "Bulk insert strategy (sequential, grouped, transaction)")
	envFile       = flag.String("env-file", ".env", "Path to .env file")

	numLibraries = flag.Int("libraries", 2, "Number of libraries to create")
	numSeries    = flag.Int("series", 4, "Number of series per library")
	numBooks     = flag.Int("books", 10, "Number of books per series")
	wipe         = flag.Bool("wipe", false, "Delete all existing libraries first (cascades to everything)")
)

var sampleAuthors = []string{
	"Iris Delacroix", "Tomas Reyes", "Hana Okada", "Felix Brandt",
	"Mara Lindqvist", "Dev Chauhan",
}

var sampleTags = []string{
	"fantasy", "thriller", "romance", "history", "science", "memoir",
}

func main() {
	flag.Parse()

	injector := di.NewContainer(config.Flags{
		Environment:   *environment,
		LogLevel:      *logLevel,
		DatabasePath:  *databasePath,
		BatchStrategy: *batchStrategy,
		EnvFile:       *envFile,
	})
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	storeHandle := do.MustInvoke[*providers.StoreHandle](injector)
	defer storeHandle.Shutdown()

	strategy, err := store.ParseBatchStrategy(cfg.Database.BatchStrategy)
	if err != nil {
		log.Fatal("invalid batch strategy", "strategy", cfg.Database.BatchStrategy)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if *wipe {
		if err := storeHandle.DeleteAllLibraries(ctx); err != nil {
			log.Fatal("wipe failed", "error", err)
		}
		log.Info("existing data wiped")
	}

	totalBooks := 0
	for l := 0; l < *numLibraries; l++ {
		lib := &domain.Library{
			ID:   id.MustGenerate("lib"),
			Name: fmt.Sprintf("Library %d", l+1),
		}
		if err := storeHandle.CreateLibrary(ctx, lib); err != nil {
			log.Fatal("create library failed", "error", err)
		}
		log.Info("library created", "library_id", lib.ID, "name", lib.Name)

		for s := 0; s < *numSeries; s++ {
			ser := &domain.Series{
				ID:        id.MustGenerate("ser"),
				LibraryID: lib.ID,
				Name:      fmt.Sprintf("Series %d-%d", l+1, s+1),
			}
			if err := storeHandle.CreateSeries(ctx, ser); err != nil {
				log.Fatal("create series failed", "error", err)
			}

			books := makeBooks(rng, lib.ID, ser.ID, *numBooks)
			if err := storeHandle.BulkCreateBooks(ctx, books, strategy); err != nil {
				log.Fatal("bulk insert failed", "error", err, "strategy", strategy.String())
			}
			totalBooks += len(books)

			for i, b := range books {
				if err := storeHandle.CreateBookMetadata(ctx, makeMetadata(rng, b, i)); err != nil {
					log.Fatal("create metadata failed", "error", err, "book_id", b.ID)
				}
			}
		}
	}

	log.Info("seed complete",
		"libraries", *numLibraries,
		"series", *numLibraries**numSeries,
		"books", totalBooks,
		"strategy", strategy.String(),
	)
}

func makeBooks(rng *rand.Rand, libraryID, seriesID string, n int) []*domain.Book {
	books := make([]*domain.Book, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, &domain.Book{
			ID:               id.MustGenerate("bok"),
			SeriesID:         seriesID,
			LibraryID:        libraryID,
			Name:             fmt.Sprintf("Volume %d", i+1),
			URL:              fmt.Sprintf("file:///media/%s/vol-%02d.epub", seriesID, i+1),
			FileSize:         int64(200_000 + rng.Intn(5_000_000)),
			FileLastModified: time.Now().Add(-time.Duration(rng.Intn(365*24)) * time.Hour),
		})
	}
	return books
}

func makeMetadata(rng *rand.Rand, b *domain.Book, index int) *domain.BookMetadata {
	release := time.Date(2015+rng.Intn(10), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)

	return &domain.BookMetadata{
		BookID:      b.ID,
		Title:       b.Name,
		Summary:     fmt.Sprintf("Entry %d of the series.", index+1),
		Number:      fmt.Sprintf("%d", index+1),
		NumberSort:  float64(index + 1),
		ReleaseDate: &release,
		Authors: []domain.Author{
			{Name: sampleAuthors[rng.Intn(len(sampleAuthors))], Role: "writer"},
		},
		Tags: []string{sampleTags[rng.Intn(len(sampleTags))]},
	}
}
