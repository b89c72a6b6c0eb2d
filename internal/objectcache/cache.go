// Package objectcache implements the object sub-cache described in spec
// §4.1: ObjectID -> ordered map of Version -> Object, manually evicted
// (never automatically), sharded for concurrent access.
//
// The id -> per-id map is a sharded concurrent hash map (xsync.MapOf), the
// same tool the spec's concurrency model calls for in §5 ("fine-grained
// per-shard locks, point operations acquire one shard lock briefly"). Each
// per-id map is itself a verscache.Entry so a writer inserting a new
// version is immediately visible to any reader already holding the handle.
package objectcache

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/lumenforge/execcache/execmodel"
	"github.com/lumenforge/execcache/internal/verscache"
)

// Cache is the manually-evicted object sub-cache.
type Cache struct {
	byID *xsync.MapOf[execmodel.ObjectID, *verscache.Entry[execmodel.Object]]
}

// New constructs an empty object sub-cache.
func New() *Cache {
	return &Cache{byID: xsync.NewMapOf[execmodel.ObjectID, *verscache.Entry[execmodel.Object]]()}
}

func (c *Cache) entry(id execmodel.ObjectID) (*verscache.Entry[execmodel.Object], bool) {
	return c.byID.Load(id)
}

func (c *Cache) entryOrCreate(id execmodel.ObjectID) *verscache.Entry[execmodel.Object] {
	e, _ := c.byID.LoadOrStore(id, verscache.New[execmodel.Object]())
	return e
}

// Get returns the object at the live (largest cached) version for id, if
// the id is present in the cache at all. It never falls through to the
// store; that is the caller's (execcache.Cache's) job, per spec §4.1 "the
// cache is deliberately not populated on read".
func (c *Cache) Get(id execmodel.ObjectID) (execmodel.Object, bool) {
	e, ok := c.entry(id)
	if !ok {
		return execmodel.Object{}, false
	}
	_, obj, ok := e.Max()
	return obj, ok
}

// GetByKey returns the object at the exact (id, version), if cached.
func (c *Cache) GetByKey(key execmodel.ObjectKey) (execmodel.Object, bool) {
	e, ok := c.entry(key.ID)
	if !ok {
		return execmodel.Object{}, false
	}
	return e.Get(uint64(key.Version))
}

// Put inserts obj at its own (ID, Version), creating the per-id entry if
// necessary. This is the only mutator; the write path (execcache.Cache)
// decides the order in which Put is called across ids to satisfy I3.
func (c *Cache) Put(obj execmodel.Object) {
	c.entryOrCreate(obj.ID).Insert(uint64(obj.Version), obj)
}

// Remove deletes one specific version of an object id. It is the removal
// primitive §5 requires the external flusher to have, used once that
// version has been durably persisted. Removing the last version of an id
// leaves behind an empty, but still present, per-id entry; that is
// harmless (Get/GetByKey both treat it as "not found"); RemoveID drops the
// per-id entry itself.
func (c *Cache) Remove(key execmodel.ObjectKey) {
	if e, ok := c.entry(key.ID); ok {
		e.Delete(uint64(key.Version))
	}
}

// RemoveID deletes the entire per-id entry, regardless of how many
// versions it holds, so no empty entry is left behind. pkg/flusher does
// not call it; its workers remove one version at a time with Remove.
func (c *Cache) RemoveID(id execmodel.ObjectID) {
	c.byID.Delete(id)
}
