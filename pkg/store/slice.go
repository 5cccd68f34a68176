package store

import (
	"sync"
)

// Guard tells a Slice whether the caller is still allowed to write.
// A superseded job returns false and its update is dropped.
type Guard interface {
	Live() bool
}

type alwaysGuard struct{}

func (alwaysGuard) Live() bool { return true }

// Always is the guard for local, synchronous updates.
var Always Guard = alwaysGuard{}

// Node is the type-erased view of a Slice used by the Tree.
type Node interface {
	Name() string
	Snapshot() any
	Version() uint64
	watch(fn func(name string, version uint64))
}

// Slice holds one module's state. State values are treated as immutable:
// reducers receive the previous value and return a new one.
type Slice[S any] struct {
	name string

	mu       sync.RWMutex
	state    S
	version  uint64
	watchers []func(name string, version uint64)
}

func NewSlice[S any](name string, initial S) *Slice[S] {
	return &Slice[S]{name: name, state: initial}
}

func (s *Slice[S]) Name() string {
	return s.name
}

func (s *Slice[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Slice[S]) Snapshot() any {
	return s.Get()
}

func (s *Slice[S]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Update applies fn atomically relative to every other update of this slice.
// It reports whether the update was applied.
func (s *Slice[S]) Update(g Guard, fn func(S) S) bool {
	s.mu.Lock()
	// Checked under the lock so a job cannot be superseded between check and write.
	if g != nil && !g.Live() {
		s.mu.Unlock()
		return false
	}
	s.state = fn(s.state)
	s.version++
	version := s.version
	watchers := s.watchers
	s.mu.Unlock()

	for _, w := range watchers {
		w(s.name, version)
	}
	return true
}

func (s *Slice[S]) watch(fn func(name string, version uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers[:len(s.watchers):len(s.watchers)], fn)
}
