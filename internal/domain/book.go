package domain

import "time"

// Book represents a single catalogued item inside a series.
// FileLastModified reflects the source file on disk and is distinct from the
// record's own audit timestamps.
type Book struct {
	Audited
	ID        string `json:"id"`
	SeriesID  string `json:"series_id"`
	LibraryID string `json:"library_id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	FileSize  int64  `json:"file_size"`

	FileLastModified time.Time `json:"file_last_modified"`
}

// EntityID returns the book's identifier.
func (b *Book) EntityID() string { return b.ID }
