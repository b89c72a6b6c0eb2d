package boundedcache

import (
	"github.com/viccon/sturdyc"
)

// Cache is a size-bounded, approximate-LRU cache of one concrete value
// type, built directly on sturdyc's generic client.
type Cache[V any] struct {
	client *sturdyc.Client[V]
}

// New validates cfg and constructs a Cache.
func New[V any](cfg Config) (*Cache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []sturdyc.Option
	if cfg.EarlyRefresh != nil {
		opts = append(opts, sturdyc.WithEarlyRefreshes(
			cfg.EarlyRefresh.MinAsyncRefreshTime,
			cfg.EarlyRefresh.MaxAsyncRefreshTime,
			cfg.EarlyRefresh.SyncRefreshTime,
			cfg.EarlyRefresh.RetryBaseDelay,
		))
	}
	if cfg.MissingRecordStorage {
		opts = append(opts, sturdyc.WithMissingRecordStorage())
	}
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[V](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage, opts...)
	return &Cache[V]{client: client}, nil
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.client.Get(key)
}

// Set inserts or overwrites the value cached for key.
func (c *Cache[V]) Set(key string, value V) {
	c.client.Set(key, value)
}

// Delete removes key, if present.
func (c *Cache[V]) Delete(key string) {
	c.client.Delete(key)
}
