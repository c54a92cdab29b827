package tree

import (
	"fmt"

	"github.com/treekv/treekv"
)

// materialize upgrades a skeleton to a materialized node exactly once.
// Concurrent callers block on the gate mutex until the first one finishes
// rather than issuing duplicate resolver calls. On failure the node is
// left a skeleton so the access can be retried; the error wraps
// treekv.ErrResolution.
//
// The transition itself is a single atomic swap of the skeleton ref to
// nil, performed only after the resolved state has been fully applied, so
// no caller can observe a half-updated node.
func (n *Node) materialize() error {
	if n.skel.Load() == nil {
		return nil
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.skel.Load()
	if s == nil {
		// another caller completed the transition while we waited
		return nil
	}

	path := n.Path()
	resolved, err := s.resolver.Resolve(path)
	if err != nil {
		return fmt.Errorf("materialize %q: %w: %v", path, treekv.ErrResolution, err)
	}
	if resolved == nil {
		return fmt.Errorf("materialize %q: %w: resolver returned no node", path, treekv.ErrResolution)
	}
	if resolved.IsSkeleton() {
		return fmt.Errorf("materialize %q: %w: resolver returned a skeleton", path, treekv.ErrResolution)
	}
	if got := resolved.Path(); got != path {
		return fmt.Errorf("materialize %q: %w: resolver returned node at %q", path, treekv.ErrResolution, got)
	}

	n.applyState(resolved)
	n.skel.Store(nil)
	return nil
}
