// Package markercache implements the marker sub-cache from spec §4.3:
// ObjectID -> shared handle to an ordered version->MarkerValue map,
// size-bounded. The handle is shared so a writer updating the map after a
// reader has retrieved it still affects the same underlying map — the same
// verscache.Entry primitive the object sub-cache uses for exactly that
// reason.
package markercache

import (
	"github.com/lumenforge/execcache/execmodel"
	"github.com/lumenforge/execcache/internal/boundedcache"
	"github.com/lumenforge/execcache/internal/verscache"
)

// MarkerReader is the slice of the durable store this sub-cache falls
// through to on a miss. Declared locally so this package stays a leaf and
// the root package's concrete Store type satisfies it structurally.
type MarkerReader interface {
	GetLastSharedObjectDeletionInfo(id execmodel.ObjectID, epoch execmodel.Epoch) (execmodel.Version, execmodel.TransactionDigest, bool, error)
	GetDeletedSharedObjectPreviousTxDigest(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (execmodel.TransactionDigest, bool, error)
	HaveReceivedObjectAtVersion(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (bool, error)
}

// Cache is the marker sub-cache.
type Cache struct {
	bounded *boundedcache.Cache[*verscache.Entry[execmodel.MarkerValue]]
	store   MarkerReader
}

// New constructs a marker sub-cache backed by store for misses.
func New(cfg boundedcache.Config, store MarkerReader) (*Cache, error) {
	bounded, err := boundedcache.New[*verscache.Entry[execmodel.MarkerValue]](cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{bounded: bounded, store: store}, nil
}

func (c *Cache) handle(id execmodel.ObjectID) (*verscache.Entry[execmodel.MarkerValue], bool) {
	return c.bounded.Get(id.String())
}

// Insert records a marker write. Used by the write path (§4.6 step 1).
func (c *Cache) Insert(write execmodel.MarkerWrite) {
	entry, ok := c.handle(write.Key.ID)
	if !ok {
		entry = verscache.New[execmodel.MarkerValue]()
		c.bounded.Set(write.Key.ID.String(), entry)
	}
	entry.Insert(uint64(write.Key.Version), write.Value)
}

// GetLastSharedObjectDeletionInfo returns the version and transaction
// digest of the most recent SharedDeleted marker for id, per spec §4.3: on
// a cache hit whose latest marker is SharedDeleted, it short-circuits
// without touching the store (invariant I6). Any other case — no cached
// handle, or a latest marker that isn't a deletion — falls through to the
// store; the cache is never populated on that fallback.
func (c *Cache) GetLastSharedObjectDeletionInfo(id execmodel.ObjectID, epoch execmodel.Epoch) (execmodel.Version, execmodel.TransactionDigest, bool, error) {
	if entry, ok := c.handle(id); ok {
		if version, marker, ok := entry.Max(); ok && marker.Kind == execmodel.MarkerSharedDeleted {
			return execmodel.Version(version), marker.TxDigest, true, nil
		}
	}
	version, txDigest, found, err := c.store.GetLastSharedObjectDeletionInfo(id, epoch)
	if err != nil {
		return 0, execmodel.TransactionDigest{}, false, execmodel.WrapStoreError("GetLastSharedObjectDeletionInfo", id, err)
	}
	return version, txDigest, found, nil
}

// GetDeletedSharedObjectPreviousTxDigest returns the transaction digest of
// the SharedDeleted marker at the exact version, falling through to the
// store when the cache holds no matching entry.
func (c *Cache) GetDeletedSharedObjectPreviousTxDigest(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (execmodel.TransactionDigest, bool, error) {
	if entry, ok := c.handle(id); ok {
		if marker, ok := entry.Get(uint64(version)); ok && marker.Kind == execmodel.MarkerSharedDeleted {
			return marker.TxDigest, true, nil
		}
	}
	txDigest, found, err := c.store.GetDeletedSharedObjectPreviousTxDigest(id, version, epoch)
	if err != nil {
		return execmodel.TransactionDigest{}, false, execmodel.WrapStoreError("GetDeletedSharedObjectPreviousTxDigest", objectKeyStringer{id, version}, err)
	}
	return txDigest, found, nil
}

// HaveReceivedObjectAtVersion reports whether a Received marker exists at
// the exact version, falling through to the store when the cache holds no
// matching entry.
func (c *Cache) HaveReceivedObjectAtVersion(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (bool, error) {
	if entry, ok := c.handle(id); ok {
		if marker, ok := entry.Get(uint64(version)); ok && marker.Kind == execmodel.MarkerReceived {
			return true, nil
		}
	}
	found, err := c.store.HaveReceivedObjectAtVersion(id, version, epoch)
	if err != nil {
		return false, execmodel.WrapStoreError("HaveReceivedObjectAtVersion", objectKeyStringer{id, version}, err)
	}
	return found, nil
}

type objectKeyStringer struct {
	id      execmodel.ObjectID
	version execmodel.Version
}

func (k objectKeyStringer) String() string {
	return execmodel.ObjectKey{ID: k.id, Version: k.version}.String()
}
