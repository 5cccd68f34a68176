package blob

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const urlPrefix = "blob:rfp-console/"

// Object is a downloaded binary reachable through a temporary URL.
type Object struct {
	URL         string
	Data        []byte
	ContentType string
	Filename    string
	CreatedAt   time.Time
}

// Registry hands out object URLs that are released after a TTL or on Revoke.
type Registry struct {
	cache *cache.Cache
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{cache: cache.New(ttl, ttl/2+time.Millisecond)}
}

func (r *Registry) Create(data []byte, contentType, filename string) string {
	url := urlPrefix + uuid.NewString()
	r.cache.Set(url, Object{
		URL:         url,
		Data:        data,
		ContentType: contentType,
		Filename:    filename,
		CreatedAt:   time.Now(),
	}, cache.DefaultExpiration)
	return url
}

func (r *Registry) Open(url string) (Object, bool) {
	if x, found := r.cache.Get(url); found {
		return x.(Object), true
	}
	return Object{}, false
}

func (r *Registry) Revoke(url string) {
	if url != "" {
		r.cache.Delete(url)
	}
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// ID returns the opaque part of an object URL.
func ID(url string) string {
	return strings.TrimPrefix(url, urlPrefix)
}

// URL rebuilds an object URL from its ID.
func URL(id string) string {
	return urlPrefix + id
}
