package domain

import "time"

// Audited provides the audit timestamps shared by every persisted entity.
// It gets embedded in any domain type that lives in the store.
type Audited struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (a *Audited) Touch() {
	a.SetUpdatedAt(time.Now())
}

// SetUpdatedAt overwrites the UpdatedAt timestamp. The store uses this to
// stamp an entity with the exact instant it persisted, and only once the
// write is known to have succeeded.
func (a *Audited) SetUpdatedAt(t time.Time) {
	a.UpdatedAt = t
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (a *Audited) InitTimestamps() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
}
