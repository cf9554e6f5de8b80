package domain

// Series represents a sequence of related books within a library.
// LibraryID is fixed at creation; moving a series between libraries is not
// supported.
type Series struct {
	Audited
	ID        string `json:"id"`
	LibraryID string `json:"library_id"`
	Name      string `json:"name"`
}

// EntityID returns the series' identifier.
func (s *Series) EntityID() string { return s.ID }
