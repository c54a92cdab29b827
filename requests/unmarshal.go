package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/treekv/treekv"
	"github.com/treekv/treekv/internal/util"
	"github.com/treekv/treekv/tree"
)

// UnmarshalNodeDef parses a JSON node definition document
func UnmarshalNodeDef(data []byte) (*NodeDef, error) {
	var def NodeDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadNodeDefFile loads a node definition document from a file.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadNodeDefFile(path string) (*NodeDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def NodeDef
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to unmarshal node def file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to unmarshal node def file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown node def file extension: %s", path)
	}
	return &def, nil
}

// ToNode converts a definition into a materialized tree node, recursively
// including its children. Definitions without a UUID get one assigned for
// log correlation.
func ToNode(def *NodeDef) (*tree.Node, error) {
	return toNode(def, treekv.ParentFromPath(def.Path))
}

func toNode(def *NodeDef, parentPath string) (*tree.Node, error) {
	logger := util.GetLogger("requests")
	defID := valueOrDefault(def.UUID, uuid.New().String())

	// a child def's path may be a bare name; qualify it under the parent
	name := treekv.NameFromPath(def.Path)
	vis := treekv.ParseVisibility(valueOrDefault(def.Visibility, ""))
	node := tree.NewNodeWithVisibility(name, parentPath, vis)

	if def.Owner != nil {
		if _, err := node.SetOwner(*def.Owner); err != nil {
			return nil, err
		}
	}
	if def.LastModified != nil {
		if _, err := node.SetOrdinal(treekv.FieldLastModified, *def.LastModified); err != nil {
			return nil, err
		}
	}

	for _, v := range def.Values {
		entry := treekv.NewEntryWithDescription(v.Key, v.Value, valueOrDefault(v.Description, ""))
		if err := node.AddValue(entry); err != nil {
			return nil, fmt.Errorf("def %s: %w", defID, err)
		}
	}

	for i := range def.Children {
		child, err := toNode(&def.Children[i], node.Path())
		if err != nil {
			return nil, err
		}
		if err := node.AddChild(child); err != nil {
			return nil, err
		}
	}

	logger.Trace().Str("def_uuid", defID).Str("path", node.Path()).Msg("Converted node definition")
	return node, nil
}

// FromNode converts a materialized node (and, recursively, its children)
// back into a definition document. Only built-in entries convert; a node
// carrying a foreign Value implementation is rejected.
func FromNode(node *tree.Node) (*NodeDef, error) {
	def := &NodeDef{Path: node.Path()}

	owner, err := node.Owner()
	if err != nil {
		return nil, err
	}
	if owner != "" {
		def.Owner = &owner
	}
	vis, err := node.Visibility()
	if err != nil {
		return nil, err
	}
	visName := vis.String()
	def.Visibility = &visName
	lastMod, err := node.LastModified()
	if err != nil {
		return nil, err
	}
	if lastMod != "" {
		def.LastModified = &lastMod
	}

	keys, err := node.ValueKeys()
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		value, err := node.GetValue(key)
		if err != nil {
			return nil, err
		}
		entry, ok := value.(*treekv.Entry)
		if !ok {
			return nil, fmt.Errorf("value %q on node %s is not a built-in entry", key, node.Path())
		}
		vd := ValueDef{Key: entry.Key(), Value: entry.Value()}
		if desc := entry.Description(); desc != "" {
			vd.Description = &desc
		}
		def.Values = append(def.Values, vd)
	}

	children, err := node.GetChildren()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		childDef, err := FromNode(children[name])
		if err != nil {
			return nil, err
		}
		def.Children = append(def.Children, *childDef)
	}

	return def, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
