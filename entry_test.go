package treekv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_DeepClone_Independent(t *testing.T) {
	t.Parallel()

	orig := NewEntryWithDescription("color", "blue", "favorite color")
	clone := orig.DeepClone().(*Entry)

	require.NotSame(t, orig, clone)
	assert.True(t, orig.Equal(clone))

	// mutating the clone must not leak back
	clone.SetValue("red")
	assert.Equal(t, "blue", orig.Value())
	assert.False(t, orig.Equal(clone))
}

func TestEntry_Equal(t *testing.T) {
	t.Parallel()

	a := NewEntry("k", "v")
	b := NewEntry("k", "v")
	c := NewEntry("k", "other")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(NewEntry("k2", "v")))

	d := NewEntryWithDescription("k", "v", "described")
	assert.False(t, a.Equal(d))
}

func TestEntry_SetValue_ReturnsPrevious(t *testing.T) {
	t.Parallel()

	e := NewEntry("k", "v1")
	prev := e.SetValue("v2")
	assert.Equal(t, "v1", prev)
	assert.Equal(t, "v2", e.Value())
}

func TestEntry_Equal_ConcurrentOppositeDirections(t *testing.T) {
	t.Parallel()

	a := NewEntry("k", "v")
	b := NewEntry("k", "v")

	// comparisons in both directions racing with writers on both entries
	// must all complete
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = a.Equal(b)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Equal(a)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.SetValue("v")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.SetValue("v")
			}
		}()
	}
	wg.Wait()
	assert.True(t, a.Equal(b))
}

func TestEntry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	e := NewEntry("k", "v")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.SetValue("w")
		}()
		go func() {
			defer wg.Done()
			_ = e.Value()
		}()
	}
	wg.Wait()
	assert.Equal(t, "w", e.Value())
}
