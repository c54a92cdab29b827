// Package resolvers provides built-in tree.Resolver implementations and a
// registry that builds them from raw JSON source configurations.
package resolvers

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/treekv/treekv/tree"
)

var (
	mu        sync.RWMutex
	factories = map[string]func([]byte) (tree.Resolver, error){}
)

// Register ties a JSON-raw factory to a "type" key and should be called
// for each resolver type during app init
func Register(resolverType string, unmarshal func(raw []byte) (tree.Resolver, error)) {
	mu.Lock()
	factories[resolverType] = unmarshal
	mu.Unlock()
}

// GetResolver picks the right factory based on the "type" field.
// All expected resolver types should be registered with [Register]
// before calling this function.
func GetResolver(raw []byte) (tree.Resolver, error) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	mu.RLock()
	f, ok := factories[meta.Type]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no factory for %q", meta.Type)
	}
	return f(raw)
}
