package treekv

import "errors"

// Sentinel errors for the node contract. Operations wrap these with
// fmt.Errorf("...: %w", ...) so callers match with errors.Is.
var (
	// ErrNotFound is returned when updating a value whose key has no
	// prior entry on the node
	ErrNotFound = errors.New("not found")

	// ErrExists is returned when adding a value whose key is already
	// present on the node
	ErrExists = errors.New("already exists")

	// ErrUnknownField is returned for ordinal access outside the closed
	// field set. This is a programming error, not a recoverable condition
	ErrUnknownField = errors.New("unknown field")

	// ErrResolution is returned when a skeleton node cannot be
	// materialized from its resolver. The node stays a skeleton so the
	// caller may retry
	ErrResolution = errors.New("resolution failure")
)
