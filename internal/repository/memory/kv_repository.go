package memory

import (
	"context"

	"rfp-console/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type KVRepository struct {
	cache *cache.Cache
}

var _ contract.KVRepository = (*KVRepository)(nil)

func NewKVRepository() *KVRepository {
	// Entries never expire; the janitor is disabled.
	return &KVRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *KVRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	if x, found := r.cache.Get(key); found {
		value := x.([]byte)
		return append([]byte(nil), value...), true, nil
	}
	return nil, false, nil
}

func (r *KVRepository) Set(_ context.Context, key string, value []byte) error {
	r.cache.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

func (r *KVRepository) Delete(_ context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
