package tree

import "github.com/treekv/treekv"

// DeepClone produces an independent copy of the node. Cloning a skeleton
// yields a skeleton with the same path and resolver; cloning a
// materialized node deep-copies its ordinals, values, and children.
// Neither variant triggers materialization
func (n *Node) DeepClone() *Node {
	var clone *Node
	if s := n.skel.Load(); s != nil {
		clone = NewSkeleton(n.Path(), s.resolver)
	} else {
		clone = newEmptyNode()
		clone.applyState(n)
	}
	clone.clock.Store(n.clock.Load())
	return clone
}

// Update overwrites this node's state from other. A skeleton peer
// contributes only its resolver handle, adopted when this node is itself
// still a skeleton; everything else stays untouched (the name needs no
// merge since names are derived from paths, never stored). A materialized
// peer fully replaces ordinals, values, and children with deep clones of
// its state
func (n *Node) Update(other *Node) {
	if s := other.skel.Load(); s != nil {
		if n.skel.Load() != nil {
			n.skel.Store(&skeletonRef{resolver: s.resolver})
		}
		return
	}
	n.applyState(other)
}

// applyState replaces this node's ordinals, values, and children with
// deep clones of src's state. lastModified is carried over from src
// verbatim at the end: the merge itself never counts as a modification
func (n *Node) applyState(src *Node) {
	n.ordinals.Range(func(f treekv.Field, _ string) bool {
		n.ordinals.Delete(f)
		return true
	})
	src.ordinals.Range(func(f treekv.Field, v string) bool {
		n.ordinals.Store(f, v)
		return true
	})

	n.values.Range(func(key string, _ treekv.Value) bool {
		n.values.Delete(key)
		return true
	})
	src.values.Range(func(key string, v treekv.Value) bool {
		n.values.Store(key, v.DeepClone())
		return true
	})

	n.children.Range(func(name string, _ *Node) bool {
		n.children.Delete(name)
		return true
	})
	src.children.Range(func(name string, child *Node) bool {
		n.children.Store(name, child.DeepClone())
		return true
	})

	if lastMod, ok := src.ordinals.Load(treekv.FieldLastModified); ok {
		n.ordinals.Store(treekv.FieldLastModified, lastMod)
	}
}

// Equal reports whether two nodes carry the same state. Both nodes are
// materialized first; they are equal when their ordinal sets match in
// size and value, their value maps match per key via each entry's own
// equality, and their child name sets match in size and membership.
// Child content is deliberately not compared. When materialization is
// not possible for a comparable pair, the fallback compares path and
// resolver identity only
func (n *Node) Equal(other *Node) bool {
	if other == nil {
		return false
	}
	if n == other {
		return true
	}

	if n.IsSkeleton() && other.IsSkeleton() {
		return n.equalByIdentity(other)
	}
	if n.materialize() != nil || other.materialize() != nil {
		return n.equalByIdentity(other)
	}

	if n.ordinals.Size() != other.ordinals.Size() {
		return false
	}
	equal := true
	other.ordinals.Range(func(f treekv.Field, v string) bool {
		mine, ok := n.ordinals.Load(f)
		if !ok || mine != v {
			equal = false
		}
		return equal
	})
	if !equal {
		return false
	}

	if n.values.Size() != other.values.Size() {
		return false
	}
	n.values.Range(func(key string, v treekv.Value) bool {
		ov, ok := other.values.Load(key)
		if !ok || !v.Equal(ov) {
			equal = false
		}
		return equal
	})
	if !equal {
		return false
	}

	// children are compared by name membership only
	if n.children.Size() != other.children.Size() {
		return false
	}
	n.children.Range(func(name string, _ *Node) bool {
		if _, ok := other.children.Load(name); !ok {
			equal = false
		}
		return equal
	})
	return equal
}

// equalByIdentity compares two nodes by path and resolver identity, the
// fallback when neither side can be materialized for a deep comparison
func (n *Node) equalByIdentity(other *Node) bool {
	if n.Path() != other.Path() {
		return false
	}
	sa, sb := n.skel.Load(), other.skel.Load()
	if sa == nil || sb == nil {
		return sa == sb
	}
	return sa.resolver == sb.resolver
}
