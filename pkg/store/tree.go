package store

import (
	"fmt"
	"sort"
	"sync"
)

// Tree is the single addressable state tree: module name -> slice.
type Tree struct {
	mu       sync.RWMutex
	nodes    map[string]Node
	watchers []func(name string, version uint64)
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[string]Node)}
}

func (t *Tree) Mount(n Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.nodes[n.Name()]; exists {
		return fmt.Errorf("slice %q already mounted", n.Name())
	}
	t.nodes[n.Name()] = n
	n.watch(t.notify)
	return nil
}

func (t *Tree) Get(name string) (any, bool) {
	t.mu.RLock()
	n, ok := t.nodes[name]
	t.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return n.Snapshot(), true
}

func (t *Tree) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.nodes))
	for name := range t.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Tree) Snapshot() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]any, len(t.nodes))
	for name, n := range t.nodes {
		out[name] = n.Snapshot()
	}
	return out
}

// Watch registers fn to run after every applied update of any mounted slice.
// fn runs on the updating goroutine and must not block.
func (t *Tree) Watch(fn func(name string, version uint64)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.watchers = append(t.watchers, fn)
}

func (t *Tree) notify(name string, version uint64) {
	t.mu.RLock()
	watchers := t.watchers
	t.mu.RUnlock()

	for _, w := range watchers {
		w(name, version)
	}
}
