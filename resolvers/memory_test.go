package resolvers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treekv/treekv"
	"github.com/treekv/treekv/tree"
)

func seedTree(t *testing.T) *tree.Node {
	t.Helper()
	root := tree.NewNodeFromPath("/a")
	_, err := root.SetOwner("alice")
	require.NoError(t, err)
	require.NoError(t, root.AddValue(treekv.NewEntry("color", "blue")))

	child := tree.NewNodeFromPath("/a/b")
	_, err = child.SetOwner("bob")
	require.NoError(t, err)
	require.NoError(t, root.AddChild(child))
	return root
}

func TestMemoryResolver_ResolveMissing(t *testing.T) {
	r := NewMemoryResolver()

	_, err := r.Resolve("/nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no node stored")
}

func TestMemoryResolver_PutResolveRoundTrip(t *testing.T) {
	r := NewMemoryResolver()
	require.NoError(t, r.Put(seedTree(t)))

	resolved, err := r.Resolve("/a")
	require.NoError(t, err)
	assert.False(t, resolved.IsSkeleton())

	owner, err := resolved.Owner()
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)

	// children come back as skeletons bound to the resolver
	child, err := resolved.GetChild("b")
	require.NoError(t, err)
	require.NotNil(t, child)
	assert.True(t, child.IsSkeleton())

	childOwner, err := child.Owner()
	require.NoError(t, err)
	assert.Equal(t, "bob", childOwner, "skeleton children materialize from the same resolver")
}

func TestMemoryResolver_ChildNameWithComma(t *testing.T) {
	r := NewMemoryResolver()
	root := tree.NewNodeFromPath("/a")
	child := tree.NewNodeFromPath("/a/b,c")
	_, err := child.SetOwner("carol")
	require.NoError(t, err)
	require.NoError(t, root.AddChild(child))
	require.NoError(t, r.Put(root))

	resolved, err := r.Resolve("/a")
	require.NoError(t, err)

	got, err := resolved.GetChild("b,c")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsSkeleton())
	assert.Equal(t, "/a/b,c", got.Path())

	owner, err := got.Owner()
	require.NoError(t, err)
	assert.Equal(t, "carol", owner)
}

func TestMemoryResolver_PutStoresClones(t *testing.T) {
	r := NewMemoryResolver()
	seed := seedTree(t)
	require.NoError(t, r.Put(seed))

	// mutating the seed afterwards must not affect stored state
	_, err := seed.SetOwner("mallory")
	require.NoError(t, err)

	resolved, err := r.Resolve("/a")
	require.NoError(t, err)
	owner, err := resolved.Owner()
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestMemoryResolver_PutRejectsSkeleton(t *testing.T) {
	r := NewMemoryResolver()

	err := r.Put(tree.NewSkeleton("/a", r))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skeleton")
}

func TestMemoryResolver_Delete(t *testing.T) {
	r := NewMemoryResolver()
	require.NoError(t, r.Put(seedTree(t)))

	r.Delete("/a")
	_, err := r.Resolve("/a")
	require.Error(t, err)

	// descendants stay registered under their own paths
	_, err = r.Resolve("/a/b")
	require.NoError(t, err)
}

func TestMemoryResolver_SkeletonEndToEnd(t *testing.T) {
	r := NewMemoryResolver()
	require.NoError(t, r.Put(seedTree(t)))

	skel := tree.NewSkeleton("/a/b", r)
	owner, err := skel.Owner()
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)
	assert.False(t, skel.IsSkeleton())
}

func TestMemoryResolver_FactoryWithSeedFile(t *testing.T) {
	RegisterBuiltins(MemoryResolverType)

	seedPath := filepath.Join(t.TempDir(), "nodes.json")
	seed := `{"path": "/a", "owner": "alice", "children": [{"path": "b", "owner": "bob"}]}`
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o644))

	r, err := GetResolver([]byte(`{"type": "memory", "seed": "` + seedPath + `"}`))
	require.NoError(t, err)

	resolved, err := r.Resolve("/a/b")
	require.NoError(t, err)
	owner, err := resolved.Owner()
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)
}
