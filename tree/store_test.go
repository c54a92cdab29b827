package tree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/treekv/treekv"
	"github.com/treekv/treekv/config"
	"github.com/treekv/treekv/internal/mocks"
	"github.com/treekv/treekv/tree"
)

func TestStore_Root(t *testing.T) {
	store := tree.NewStore(nil, nil)

	root := store.Root()
	require.NotNil(t, root)
	assert.Equal(t, "", root.Path())
	assert.False(t, root.IsSkeleton())

	// the empty path addresses the root
	got, err := store.Get("")
	require.NoError(t, err)
	assert.Same(t, root, got)
}

func TestStore_Get_NilResolver_CreatesEmptyNodes(t *testing.T) {
	store := tree.NewStore(nil, nil)

	node, err := store.Get("/a/b")
	require.NoError(t, err)
	assert.Equal(t, "/a/b", node.Path())
	assert.False(t, node.IsSkeleton(), "a local store has nothing to resolve from")

	vis, err := node.Visibility()
	require.NoError(t, err)
	assert.Equal(t, treekv.VisibilityRed, vis)

	// repeated lookups return the same live node
	again, err := store.Get("/a/b")
	require.NoError(t, err)
	assert.Same(t, node, again)

	// paths are canonicalized against the root
	unrooted, err := store.Get("a/b")
	require.NoError(t, err)
	assert.Same(t, node, unrooted)
}

func TestStore_Get_WithResolver_CreatesSkeletons(t *testing.T) {
	resolver := &mocks.MockResolver{}
	store := tree.NewStore(config.NewDefaultConfig(), resolver)

	node, err := store.Get("/a")
	require.NoError(t, err)
	assert.True(t, node.IsSkeleton(), "missing steps become skeletons bound to the store resolver")
	resolver.AssertNotCalled(t, "Resolve", mock.Anything)

	resolved := tree.NewNodeFromPath("/a")
	_, err = resolved.SetOwner("alice")
	require.NoError(t, err)
	resolver.On("Resolve", "/a").Return(resolved, nil)

	owner, err := node.Owner()
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
	resolver.AssertNumberOfCalls(t, "Resolve", 1)
}

func TestStore_Get_NestedWalkResolvesAncestors(t *testing.T) {
	resolver := &mocks.MockResolver{}
	resolver.On("Resolve", "/a").Return(tree.NewNodeFromPath("/a"), nil)
	store := tree.NewStore(config.NewDefaultConfig(), resolver)

	node, err := store.Get("/a/b")
	require.NoError(t, err)
	assert.Equal(t, "/a/b", node.Path())
	assert.True(t, node.IsSkeleton())

	// walking through /a materialized it; the leaf stays lazy
	resolver.AssertNumberOfCalls(t, "Resolve", 1)
}

func TestStore_Get_ResolutionFailurePropagates(t *testing.T) {
	resolver := &mocks.MockResolver{}
	resolver.On("Resolve", "/a").Return(nil, errors.New("backend down"))
	store := tree.NewStore(config.NewDefaultConfig(), resolver)

	_, err := store.Get("/a/b")
	require.Error(t, err)
	assert.ErrorIs(t, err, treekv.ErrResolution)
}

func TestStore_Add(t *testing.T) {
	store := tree.NewStore(nil, nil)

	node := tree.NewNodeFromPath("/x/y")
	_, err := node.SetOwner("alice")
	require.NoError(t, err)
	require.NoError(t, store.Add(node))

	got, err := store.Get("/x/y")
	require.NoError(t, err)
	assert.Same(t, node, got, "Add attaches the node itself, not a copy")

	// the intermediate parent was created on the way
	parent, err := store.Get("/x")
	require.NoError(t, err)
	child, err := parent.GetChild("y")
	require.NoError(t, err)
	assert.Same(t, node, child)
}

func TestStore_TouchOnWrite(t *testing.T) {
	override := &config.ConfigOverride{}
	enabled := true
	override.TouchOnWrite = &enabled
	store := tree.NewStore(config.NewConfig(override), nil)

	node, err := store.Get("/a")
	require.NoError(t, err)
	_, err = node.SetOwner("alice")
	require.NoError(t, err)

	lastMod, err := node.LastModified()
	require.NoError(t, err)
	assert.NotEmpty(t, lastMod, "stores with touch_on_write maintain lastModified")
}
