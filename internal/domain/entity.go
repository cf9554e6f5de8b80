package domain

import "time"

// Entity is the capability contract every persisted type satisfies: it has an
// identifier and carries Audited timestamps. The generic store layer is
// written against this interface rather than concrete types.
type Entity interface {
	EntityID() string
	InitTimestamps()
	Touch()
	SetUpdatedAt(time.Time)
}

var (
	_ Entity = (*Library)(nil)
	_ Entity = (*Series)(nil)
	_ Entity = (*Book)(nil)
	_ Entity = (*BookMetadata)(nil)
)
