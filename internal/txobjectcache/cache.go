// Package txobjectcache implements the transaction-objects sub-cache from
// spec §4.4: TransactionDigest -> the list of Objects read at signing
// time, size-bounded. It never falls through to the store: a miss simply
// means the caller re-reads inputs individually.
package txobjectcache

import (
	"github.com/lumenforge/execcache/execmodel"
	"github.com/lumenforge/execcache/internal/boundedcache"
)

// Cache is the transaction-objects sub-cache.
type Cache struct {
	bounded *boundedcache.Cache[[]execmodel.Object]
}

// New constructs an empty transaction-objects sub-cache.
func New(cfg boundedcache.Config) (*Cache, error) {
	bounded, err := boundedcache.New[[]execmodel.Object](cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{bounded: bounded}, nil
}

// Get returns the objects read at signing time for the transaction, if
// still cached.
func (c *Cache) Get(digest execmodel.TransactionDigest) ([]execmodel.Object, bool) {
	return c.bounded.Get(digest.String())
}

// Put records the objects read at signing time for the transaction,
// populated by the signing path.
func (c *Cache) Put(digest execmodel.TransactionDigest, objects []execmodel.Object) {
	c.bounded.Set(digest.String(), objects)
}

// Remove evicts the entry for digest, e.g. once execution has consumed it.
func (c *Cache) Remove(digest execmodel.TransactionDigest) {
	c.bounded.Delete(digest.String())
}
