package treekv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"nested_path", "/a/b", "b"},
		{"single_segment_rooted", "/a", "a"},
		{"no_delimiter", "a", "a"},
		{"deep_path", "/users/alice/devices", "devices"},
		{"empty_path", "", ""},
		{"trailing_delimiter", "/a/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NameFromPath(tt.path))
		})
	}
}

func TestParentFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"nested_path", "/a/b", "/a"},
		{"single_segment_rooted", "/a", ""},
		{"no_delimiter_means_root_parent", "a", ""},
		{"deep_path", "/users/alice/devices", "/users/alice"},
		{"empty_path", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParentFromPath(tt.path))
		})
	}
}

func TestJoinPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a/b", JoinPath("/a", "b"))
	assert.Equal(t, "/a", JoinPath("", "a"))
}

func TestJoinPath_RoundTrip(t *testing.T) {
	t.Parallel()

	path := JoinPath("/users/alice", "devices")
	assert.Equal(t, "devices", NameFromPath(path))
	assert.Equal(t, "/users/alice", ParentFromPath(path))
}
