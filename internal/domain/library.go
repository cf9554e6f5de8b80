// Package domain contains the core business entities and domain logic for the shelfkeep media library.
package domain

// Library represents a root collection of series and books.
// Everything stored under a library is reachable through its series.
type Library struct {
	Audited
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityID returns the library's identifier.
func (l *Library) EntityID() string { return l.ID }
