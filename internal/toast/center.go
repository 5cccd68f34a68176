package toast

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Toast struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	seq uint64
}

// Center holds transient notifications until they expire.
type Center struct {
	cache *cache.Cache
	seq   atomic.Uint64

	mu        sync.RWMutex
	listeners map[uint64]func(Toast)
	nextID    uint64
}

func NewCenter(ttl time.Duration) *Center {
	return &Center{
		cache:     cache.New(ttl, ttl),
		listeners: make(map[uint64]func(Toast)),
	}
}

func (c *Center) Push(level Level, message string) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
		seq:       c.seq.Add(1),
	}
	c.cache.Set(t.ID, t, cache.DefaultExpiration)

	c.mu.RLock()
	listeners := make([]func(Toast), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.RUnlock()

	for _, fn := range listeners {
		fn(t)
	}
	return t
}

func (c *Center) Info(message string)    { c.Push(LevelInfo, message) }
func (c *Center) Success(message string) { c.Push(LevelSuccess, message) }
func (c *Center) Warning(message string) { c.Push(LevelWarning, message) }
func (c *Center) Error(message string)   { c.Push(LevelError, message) }

func (c *Center) Dismiss(id string) {
	c.cache.Delete(id)
}

// Active returns unexpired toasts, newest first.
func (c *Center) Active() []Toast {
	items := c.cache.Items()
	out := make([]Toast, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(Toast))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	return out
}

// Listen calls fn for every new toast until the returned func is called.
func (c *Center) Listen(fn func(Toast)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}
