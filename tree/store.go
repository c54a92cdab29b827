package tree

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/treekv/treekv"
	"github.com/treekv/treekv/config"
	"github.com/treekv/treekv/internal/util"
)

// Store owns the root of a node tree together with the resolver new
// skeletons bind to and the clock settings derived from configuration.
// It provides path-based access on top of the per-node operations; like
// them, it guarantees atomicity per individual call only, never
// transactional multi-node atomicity.
type Store struct {
	cfg      *config.Config
	root     *Node
	resolver Resolver
	logger   zerolog.Logger
}

// NewStore creates a store with an empty root node. resolver backs the
// skeletons Get creates for unknown paths; with a nil resolver the store
// is purely local and unknown paths come into existence as empty
// materialized nodes instead
func NewStore(cfg *config.Config, resolver Resolver) *Store {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// the root is addressed by the empty path so that first-level nodes
	// get paths like "/a" per the delimiter contract
	root := newEmptyNode()
	root.ordinals.Store(treekv.FieldPath, "")
	root.ordinals.Store(treekv.FieldVisibility, treekv.ParseVisibility(cfg.DefaultVisibility).String())

	s := &Store{
		cfg:      cfg,
		root:     root,
		resolver: resolver,
		logger:   util.GetLogger("store"),
	}
	s.applyClock(root)
	return s
}

// Root returns the live root node of the tree
func (s *Store) Root() *Node {
	return s.root
}

// Get walks the tree to the node at path, creating a node for every
// missing step along the way: a skeleton bound to the store's resolver,
// or an empty materialized node when the store has none. The returned
// reference is live, like Node.GetChild. Paths are canonicalized against
// the root, so "a/b" and "/a/b" address the same node
func (s *Store) Get(path string) (*Node, error) {
	cur := s.root
	for _, seg := range strings.Split(path, treekv.Delimiter) {
		if seg == "" {
			continue
		}
		child, err := cur.GetChild(seg)
		if err != nil {
			return nil, err
		}
		if child == nil {
			stepPath := treekv.JoinPath(cur.Path(), seg)
			if err := cur.AddChild(s.newStep(stepPath)); err != nil {
				return nil, err
			}
			// re-fetch the live entry: AddChild is an idempotent
			// insert and a concurrent caller may have won the slot
			if child, err = cur.GetChild(seg); err != nil {
				return nil, err
			}
		}
		cur = child
	}
	return cur, nil
}

// Add attaches node under the parent its path names, creating any
// missing intermediate nodes. Like Node.AddChild this is an idempotent
// insert: an existing child with the same name stays in place
func (s *Store) Add(node *Node) error {
	parent, err := s.Get(node.ParentPath())
	if err != nil {
		return err
	}
	s.applyClock(node)
	return parent.AddChild(node)
}

// newStep builds the placeholder node Get inserts for a missing path step
func (s *Store) newStep(path string) *Node {
	var node *Node
	if s.resolver != nil {
		node = NewSkeleton(path, s.resolver)
		s.logger.Debug().Str("path", path).Msg("Created skeleton for unresolved path step")
	} else {
		node = NewNodeWithVisibility(treekv.NameFromPath(path), treekv.ParentFromPath(path),
			treekv.ParseVisibility(s.cfg.DefaultVisibility))
		s.logger.Debug().Str("path", path).Msg("Created empty node for missing path step")
	}
	s.applyClock(node)
	return node
}

func (s *Store) applyClock(node *Node) {
	if s.cfg.TouchOnWrite {
		node.SetClock(time.Now)
	}
}
