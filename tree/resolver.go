package tree

// Resolver fetches the fully materialized node for a path. Every skeleton
// node holds one; the materialization gate calls it at most once per node
// instance, synchronously. Implementations own their timeout policy and
// must be safe for concurrent use.
type Resolver interface {
	// Resolve returns the materialized node stored at path. Returning an
	// error, a nil node, or a skeleton is a resolution failure; the
	// calling node surfaces it as treekv.ErrResolution and stays a
	// retryable skeleton
	Resolve(path string) (*Node, error)
}
