package domain

import (
	"slices"
	"time"
)

// Author is a single credited contributor on a book's metadata.
// The same name may appear more than once with different roles.
type Author struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// MetadataLocks records which metadata fields were set by hand.
// A locked field must be preserved by automated refreshes; the store itself
// only persists the flags, it does not enforce the policy.
type MetadataLocks struct {
	Title       bool `json:"title"`
	Summary     bool `json:"summary"`
	Number      bool `json:"number"`
	NumberSort  bool `json:"number_sort"`
	ReleaseDate bool `json:"release_date"`
	Authors     bool `json:"authors"`
	Tags        bool `json:"tags"`
}

// BookMetadata holds the descriptive, refreshable data for a book.
// It is keyed by the owning book's ID and cannot outlive it.
type BookMetadata struct {
	Audited
	BookID string `json:"book_id"`

	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Number     string  `json:"number"`      // display string, e.g. "1", "1.5", "Special"
	NumberSort float64 `json:"number_sort"` // ordering key for Number

	ReleaseDate *time.Time `json:"release_date,omitempty"` // calendar date, no time component

	Authors []Author `json:"authors"` // order is meaningful
	Tags    []string `json:"tags"`    // unordered, no duplicates

	Locks MetadataLocks `json:"locks"`
}

// EntityID returns the owning book's identifier.
func (m *BookMetadata) EntityID() string { return m.BookID }

// ApplyUnlocked copies every unlocked field group from incoming onto m,
// leaving locked fields at their current values. Lock flags themselves are
// never changed by a refresh. Collection fields are copied wholesale.
func (m *BookMetadata) ApplyUnlocked(incoming *BookMetadata) {
	if !m.Locks.Title {
		m.Title = incoming.Title
	}
	if !m.Locks.Summary {
		m.Summary = incoming.Summary
	}
	if !m.Locks.Number {
		m.Number = incoming.Number
	}
	if !m.Locks.NumberSort {
		m.NumberSort = incoming.NumberSort
	}
	if !m.Locks.ReleaseDate {
		m.ReleaseDate = incoming.ReleaseDate
	}
	if !m.Locks.Authors {
		m.Authors = slices.Clone(incoming.Authors)
	}
	if !m.Locks.Tags {
		m.Tags = slices.Clone(incoming.Tags)
	}
}

// HasTag reports whether the metadata carries the given tag.
func (m *BookMetadata) HasTag(tag string) bool {
	return slices.Contains(m.Tags, tag)
}
