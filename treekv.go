// Package treekv contains core domain types and interfaces for the treekv
// hierarchical key/value storage tree
package treekv

// Value defines the contract for a single key/value entry attached to a
// node. The tree treats entries as opaque beyond cloning and equality:
// payload layout, typing, and interpretation belong to the caller.
type Value interface {
	// Key returns the entry's key, unique within its owning node
	Key() string

	// DeepClone returns an independent copy of the entry. Mutating the
	// copy must never be observable through the original
	DeepClone() Value

	// Equal reports whether the entry carries the same content as other
	Equal(other Value) bool
}
