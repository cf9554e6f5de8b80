package store

// BookSearch is an extensible set of optional predicates over books.
// A nil or empty dimension is not applied; populated dimensions combine with
// logical AND. New dimensions are added as fields without breaking callers.
type BookSearch struct {
	LibraryIDs []string
	SeriesIDs  []string
}

// IsEmpty reports whether no dimension is applied.
func (s BookSearch) IsEmpty() bool {
	return len(s.LibraryIDs) == 0 && len(s.SeriesIDs) == 0
}

// SeriesSearch is the series-level counterpart of BookSearch.
type SeriesSearch struct {
	LibraryIDs []string
}

// IsEmpty reports whether no dimension is applied.
func (s SeriesSearch) IsEmpty() bool {
	return len(s.LibraryIDs) == 0
}
