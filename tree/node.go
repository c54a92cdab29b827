// Package tree implements the addressable unit of a treekv store: a node
// in a hierarchical, path-addressed key/value tree.
//
// A node exists in one of two representations. A skeleton knows only its
// path and the resolver that can fetch the rest; a materialized node
// carries its ordinal fields, key/value entries, and child references in
// memory. Skeletons materialize transparently, exactly once, on the first
// access that needs data.
package tree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/treekv/treekv"
)

// skeletonRef is the variant payload a node carries while it is still a
// skeleton: the sole link to its data source. It is discarded as a whole
// when the node materializes, so a materialized node can never retain a
// resolver handle.
type skeletonRef struct {
	resolver Resolver
}

// Node is one addressable unit of the tree. All operations are safe for
// concurrent use; atomicity is per individual operation, compound
// sequences need caller-level coordination.
type Node struct {
	ordinals *xsync.Map[treekv.Field, string] // stored ordinal fields; name is derived, never stored
	values   *xsync.Map[string, treekv.Value] // key/value entries by key
	children *xsync.Map[string, *Node]        // child nodes by name, owned by this node
	skel     atomic.Pointer[skeletonRef]      // non-nil while the node is a skeleton
	mu       sync.Mutex                       // serializes the skeleton->materialized transition
	vmu      sync.Mutex                       // serializes read-modify-write value updates
	clock    atomic.Pointer[func() time.Time] // non-nil enables lastModified maintenance
}

func newEmptyNode() *Node {
	return &Node{
		ordinals: xsync.NewMap[treekv.Field, string](),
		values:   xsync.NewMap[string, treekv.Value](),
		children: xsync.NewMap[string, *Node](),
	}
}

// NewSkeleton creates a skeleton node for path, bound to the resolver
// that will materialize it on first data access
func NewSkeleton(path string, resolver Resolver) *Node {
	n := newEmptyNode()
	n.ordinals.Store(treekv.FieldPath, path)
	n.skel.Store(&skeletonRef{resolver: resolver})
	return n
}

// NewNode creates a materialized empty node with the given name under
// parent, tagged with the default RED visibility
func NewNode(name, parent string) *Node {
	return NewNodeWithVisibility(name, parent, treekv.VisibilityRed)
}

// NewNodeWithVisibility creates a materialized empty node with the given
// name, parent path, and visibility. Owner and lastModified start empty
func NewNodeWithVisibility(name, parent string, vis treekv.Visibility) *Node {
	n := newEmptyNode()
	n.ordinals.Store(treekv.FieldPath, treekv.JoinPath(parent, name))
	n.ordinals.Store(treekv.FieldVisibility, vis.String())
	return n
}

// NewNodeFromPath creates a materialized empty node for the given fully
// qualified path
func NewNodeFromPath(path string) *Node {
	return NewNodeWithVisibility(treekv.NameFromPath(path), treekv.ParentFromPath(path), treekv.VisibilityRed)
}

// IsSkeleton reports whether the node still needs materialization. Pure;
// never triggers a resolver call
func (n *Node) IsSkeleton() bool {
	return n.skel.Load() != nil
}

// Resolver returns the resolver a skeleton will materialize from, or nil
// once the node is materialized
func (n *Node) Resolver() Resolver {
	if s := n.skel.Load(); s != nil {
		return s.resolver
	}
	return nil
}

// SetClock enables lastModified maintenance: once a clock is set, any
// ordinal write that changes a value (other than a direct lastModified
// write) refreshes lastModified with the clock's current time in unix
// milliseconds. Passing nil disables it again. Clones inherit the clock
func (n *Node) SetClock(fn func() time.Time) {
	if fn == nil {
		n.clock.Store(nil)
		return
	}
	n.clock.Store(&fn)
}

func (n *Node) touch() {
	if fn := n.clock.Load(); fn != nil {
		now := (*fn)()
		n.ordinals.Store(treekv.FieldLastModified, strconv.FormatInt(now.UnixMilli(), 10))
	}
}

// Path returns the node's fully qualified path. Always resolvable, even
// on a skeleton
func (n *Node) Path() string {
	path, _ := n.ordinals.Load(treekv.FieldPath)
	return path
}

// Name returns the node's name, the last segment of its path
func (n *Node) Name() string {
	return treekv.NameFromPath(n.Path())
}

// ParentPath returns the fully qualified path of the parental node, or
// the empty string for a path without a delimiter
func (n *Node) ParentPath() string {
	return treekv.ParentFromPath(n.Path())
}

// GetOrdinal returns the value of an ordinal field. Fields outside the
// closed set fail with treekv.ErrUnknownField. Path and the derived name
// are readable without materialization; all other fields materialize the
// node first
func (n *Node) GetOrdinal(field treekv.Field) (string, error) {
	switch field {
	case treekv.FieldPath:
		return n.Path(), nil
	case treekv.FieldName:
		return n.Name(), nil
	case treekv.FieldOwner, treekv.FieldVisibility, treekv.FieldLastModified:
		if err := n.materialize(); err != nil {
			return "", err
		}
		v, _ := n.ordinals.Load(field)
		return v, nil
	default:
		return "", fmt.Errorf("%w: get %q", treekv.ErrUnknownField, field)
	}
}

// SetOrdinal sets an ordinal field and returns the previous value. The
// derived name is not settable. Path is settable without materialization;
// it is meant for construction only, a node's logical location never
// changes in a live tree
func (n *Node) SetOrdinal(field treekv.Field, value string) (string, error) {
	switch field {
	case treekv.FieldPath:
	case treekv.FieldOwner, treekv.FieldVisibility, treekv.FieldLastModified:
		if err := n.materialize(); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: set %q", treekv.ErrUnknownField, field)
	}

	prev, _ := n.ordinals.Load(field)
	n.ordinals.Store(field, value)
	if field != treekv.FieldLastModified && prev != value {
		n.touch()
	}
	return prev, nil
}

// Owner returns the node's owner, materializing first if needed
func (n *Node) Owner() (string, error) {
	return n.GetOrdinal(treekv.FieldOwner)
}

// SetOwner sets the node's owner and returns the previous one
func (n *Node) SetOwner(owner string) (string, error) {
	return n.SetOrdinal(treekv.FieldOwner, owner)
}

// Visibility returns the node's visibility tag. An unset or unknown
// stored value reads as RED
func (n *Node) Visibility() (treekv.Visibility, error) {
	v, err := n.GetOrdinal(treekv.FieldVisibility)
	if err != nil {
		return "", err
	}
	return treekv.ParseVisibility(v), nil
}

// SetVisibility sets the node's visibility tag and returns the previous one
func (n *Node) SetVisibility(vis treekv.Visibility) (treekv.Visibility, error) {
	prev, err := n.SetOrdinal(treekv.FieldVisibility, vis.String())
	if err != nil {
		return "", err
	}
	return treekv.ParseVisibility(prev), nil
}

// LastModified returns the node's last-modified timestamp in unix
// milliseconds, or the empty string if never set
func (n *Node) LastModified() (string, error) {
	return n.GetOrdinal(treekv.FieldLastModified)
}

// GetValue returns a deep clone of the entry stored under key, or nil if
// absent. The internal entry is never handed out
func (n *Node) GetValue(key string) (treekv.Value, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	v, ok := n.values.Load(key)
	if !ok {
		return nil, nil
	}
	return v.DeepClone(), nil
}

// AddValue inserts a new entry, failing with treekv.ErrExists when an
// entry with the same key is already present
func (n *Node) AddValue(value treekv.Value) error {
	if err := n.materialize(); err != nil {
		return err
	}
	if _, loaded := n.values.LoadOrStore(value.Key(), value); loaded {
		return fmt.Errorf("value %q %w in node %s", value.Key(), treekv.ErrExists, n.Name())
	}
	return nil
}

// UpdateValue replaces an existing entry and returns the prior one (not a
// clone), failing with treekv.ErrNotFound when no entry with that key
// exists
func (n *Node) UpdateValue(value treekv.Value) (treekv.Value, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	n.vmu.Lock()
	defer n.vmu.Unlock()
	prev, ok := n.values.Load(value.Key())
	if !ok {
		return nil, fmt.Errorf("value %q %w in node %s", value.Key(), treekv.ErrNotFound, n.Name())
	}
	n.values.Store(value.Key(), value)
	return prev, nil
}

// RemoveValue removes the entry stored under key and returns it, or nil
// if absent
func (n *Node) RemoveValue(key string) (treekv.Value, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	v, _ := n.values.LoadAndDelete(key)
	return v, nil
}

// ValueKeys returns the keys of all value entries, sorted. The entries
// themselves stay private; fetch individual clones via GetValue
func (n *Node) ValueKeys() ([]string, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, n.values.Size())
	n.values.Range(func(key string, _ treekv.Value) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

// AddChild inserts child under its name. If a child with that name is
// already present the call is silently ignored; idempotent insert, not an
// error
func (n *Node) AddChild(child *Node) error {
	if err := n.materialize(); err != nil {
		return err
	}
	n.children.LoadOrStore(child.Name(), child)
	return nil
}

// RemoveChild removes the child with the given name; no-op if absent
func (n *Node) RemoveChild(name string) error {
	if err := n.materialize(); err != nil {
		return err
	}
	n.children.Delete(name)
	return nil
}

// GetChild returns the live child node with the given name, or nil if
// absent. Unlike GetChildren this is a shared reference into the tree:
// mutations through it are visible to every other holder. The asymmetry
// is intentional contract, see GetChildren
func (n *Node) GetChild(name string) (*Node, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	child, _ := n.children.Load(name)
	return child, nil
}

// GetChildren returns a snapshot of all children as deep clones keyed by
// name. Callers never receive live references into the tree through this
// accessor; mutate a specific child via GetChild instead
func (n *Node) GetChildren() (map[string]*Node, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	out := make(map[string]*Node, n.children.Size())
	n.children.Range(func(name string, child *Node) bool {
		out[name] = child.DeepClone()
		return true
	})
	return out, nil
}

// ChildNames returns the names of all children, sorted
func (n *Node) ChildNames() ([]string, error) {
	if err := n.materialize(); err != nil {
		return nil, err
	}
	names := make([]string, 0, n.children.Size())
	n.children.Range(func(name string, _ *Node) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names, nil
}

// ChildNamesCSV returns the names of all children, sorted and joined with
// commas; the empty string when there are none. Display rendering only,
// names may themselves contain commas
func (n *Node) ChildNamesCSV() (string, error) {
	names, err := n.ChildNames()
	if err != nil {
		return "", err
	}
	return strings.Join(names, ","), nil
}

// String renders the node as path[owner/visibility/lastModified](keys...).
// It materializes the node; if that fails the skeleton is rendered by
// path alone
func (n *Node) String() string {
	if err := n.materialize(); err != nil {
		return n.Path() + "[<skeleton>]"
	}
	owner, _ := n.ordinals.Load(treekv.FieldOwner)
	vis, _ := n.ordinals.Load(treekv.FieldVisibility)
	lastMod, _ := n.ordinals.Load(treekv.FieldLastModified)

	keys := make([]string, 0, n.values.Size())
	n.values.Range(func(key string, _ treekv.Value) bool {
		keys = append(keys, key)
		return true
	})
	sort.Strings(keys)
	return fmt.Sprintf("%s[%s/%s/%s](%s)", n.Path(), owner, vis, lastMod, strings.Join(keys, ", "))
}
