package resolvers

import (
	"encoding/json"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"

	"github.com/treekv/treekv"
	"github.com/treekv/treekv/internal/util"
	"github.com/treekv/treekv/requests"
	"github.com/treekv/treekv/tree"
)

// MemoryConfig contains memory-specific resolver source fields
type MemoryConfig struct {
	Seed string `json:"seed,omitempty"` // Optional node definition file to preload
}

func RegisterMemory() {
	Register(MemoryResolverType, func(raw []byte) (tree.Resolver, error) {
		var cfg MemoryConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		r := NewMemoryResolver()
		if cfg.Seed != "" {
			def, err := requests.LoadNodeDefFile(cfg.Seed)
			if err != nil {
				return nil, err
			}
			node, err := requests.ToNode(def)
			if err != nil {
				return nil, err
			}
			if err := r.Put(node); err != nil {
				return nil, err
			}
		}
		return r, nil
	})
}

// MemoryResolver is a map-backed resolver: every node is addressable
// under its own path, and Resolve hands out materialized nodes whose
// children are skeletons bound to this resolver, keeping descendants
// lazy. Safe for concurrent use.
type MemoryResolver struct {
	nodes  *xsync.Map[string, *tree.Node]
	logger zerolog.Logger
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		nodes:  xsync.NewMap[string, *tree.Node](),
		logger: util.GetLogger("memory-resolver"),
	}
}

// Put registers node and all of its descendants, each under its own
// path. The stored state is deep-cloned; the caller keeps ownership of
// the original. Skeletons cannot be seeded
func (r *MemoryResolver) Put(node *tree.Node) error {
	if node.IsSkeleton() {
		return fmt.Errorf("cannot seed resolver with skeleton %q", node.Path())
	}
	r.nodes.Store(node.Path(), node.DeepClone())

	children, err := node.GetChildren()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := r.Put(child); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the node stored at path; no-op if absent. Descendants
// stay registered under their own paths
func (r *MemoryResolver) Delete(path string) {
	r.nodes.Delete(path)
}

// Resolve returns a materialized copy of the node stored at path with
// skeleton children, or an error if nothing is stored there
func (r *MemoryResolver) Resolve(path string) (*tree.Node, error) {
	stored, ok := r.nodes.Load(path)
	if !ok {
		return nil, fmt.Errorf("no node stored at %q", path)
	}

	out := stored.DeepClone()
	names, err := out.ChildNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := out.RemoveChild(name); err != nil {
			return nil, err
		}
		if err := out.AddChild(tree.NewSkeleton(treekv.JoinPath(path, name), r)); err != nil {
			return nil, err
		}
	}

	r.logger.Debug().Str("path", path).Msg("Resolved node from memory")
	return out, nil
}
