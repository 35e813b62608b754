// Package id provides UUIDv7 generation for all entities.
// UUIDv7 is time-ordered, so line items and documents sort naturally by
// creation time, the stable order the price reconciler depends on.
package id

import (
	"github.com/google/uuid"
)

// ID identifies every catalog, document and line in the system.
type ID = uuid.UUID

// New generates a time-ordered UUIDv7.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source does; fall back to V4.
		return uuid.New()
	}
	return v7
}

// Parse converts a string to an ID, validating the format.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a string to an ID, panicking on error. For
// constants and tests only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero ID.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether id is the zero ID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
