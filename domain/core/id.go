package core

import (
	"github.com/google/uuid"
)

// RunID identifies a single invocation of the enumeration engine.
type RunID string

// NewRunID creates a new time-ordered run identifier.
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation.
func (id RunID) String() string {
	return string(id)
}

// IsEmpty reports whether the identifier was never assigned.
func (id RunID) IsEmpty() bool {
	return id == ""
}
