package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	Count int
	Items []int
}

type staticGuard bool

func (g staticGuard) Live() bool { return bool(g) }

func TestSliceUpdate(t *testing.T) {
	s := NewSlice("counter", counterState{})

	applied := s.Update(Always, func(st counterState) counterState {
		st.Count++
		return st
	})
	assert.True(t, applied)
	assert.Equal(t, 1, s.Get().Count)
	assert.Equal(t, uint64(1), s.Version())

	applied = s.Update(staticGuard(false), func(st counterState) counterState {
		st.Count = 100
		return st
	})
	assert.False(t, applied)
	assert.Equal(t, 1, s.Get().Count)
	assert.Equal(t, uint64(1), s.Version())
}

func TestSliceConcurrentUpdatesAreAtomic(t *testing.T) {
	s := NewSlice("counter", counterState{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Update(Always, func(st counterState) counterState {
				items := append([]int(nil), st.Items...)
				st.Items = append(items, n)
				st.Count++
				return st
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Get().Count)
	assert.Len(t, s.Get().Items, 50)
}

func TestTree(t *testing.T) {
	tree := NewTree()
	a := NewSlice("a", counterState{})
	b := NewSlice("b", "hello")

	require.NoError(t, tree.Mount(a))
	require.NoError(t, tree.Mount(b))
	assert.Error(t, tree.Mount(NewSlice("a", 0)))

	var changed []string
	tree.Watch(func(name string, _ uint64) { changed = append(changed, name) })

	a.Update(Always, func(st counterState) counterState { st.Count = 7; return st })

	got, ok := tree.Get("a")
	require.True(t, ok)
	assert.Equal(t, 7, got.(counterState).Count)
	assert.Equal(t, []string{"a"}, changed)
	assert.Equal(t, []string{"a", "b"}, tree.Names())
	assert.Equal(t, "hello", tree.Snapshot()["b"])

	_, ok = tree.Get("missing")
	assert.False(t, ok)
}

func TestFlags(t *testing.T) {
	var f Flags
	g := f.Set("5-9")
	h := g.Set("6-9")

	assert.False(t, f.Has("5-9"))
	assert.True(t, g.Has("5-9"))
	assert.False(t, g.Has("6-9"))

	i := h.Clear("5-9")
	assert.True(t, h.Has("5-9"))
	assert.False(t, i.Has("5-9"))
	assert.True(t, i.Has("6-9"))
}

func TestStatusTransitions(t *testing.T) {
	var s Status
	s = s.Start()
	assert.Equal(t, Status{Loading: true}, s)
	assert.Equal(t, Status{Error: "boom"}, s.Fail("boom"))
	assert.Equal(t, Status{Success: true}, s.Succeed())
}
