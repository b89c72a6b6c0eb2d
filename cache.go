package execcache

import (
	"github.com/lumenforge/execcache/execmodel"
	"github.com/lumenforge/execcache/internal/markercache"
	"github.com/lumenforge/execcache/internal/objectcache"
	"github.com/lumenforge/execcache/internal/packagecache"
	"github.com/lumenforge/execcache/internal/pendingcache"
	"github.com/lumenforge/execcache/internal/txobjectcache"
)

// Cache is the in-memory execution cache: five sub-caches plus the durable
// store they fall through to on a miss (spec §2).
type Cache struct {
	store Store

	objects  *objectcache.Cache
	packages *packagecache.Cache
	markers  *markercache.Cache
	txObjs   *txobjectcache.Cache
	pending  *pendingcache.Cache
}

// NewCache constructs a Cache backed by store, validating cfg first.
func NewCache(cfg Config, store Store) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	packages, err := packagecache.New(cfg.Packages, store)
	if err != nil {
		return nil, err
	}
	markers, err := markercache.New(cfg.Markers, store)
	if err != nil {
		return nil, err
	}
	txObjs, err := txobjectcache.New(cfg.TransactionObjects)
	if err != nil {
		return nil, err
	}

	return &Cache{
		store:    store,
		objects:  objectcache.New(),
		packages: packages,
		markers:  markers,
		txObjs:   txObjs,
		pending:  pendingcache.New(),
	}, nil
}

// GetObject returns the live (largest cached) version of id, reading
// through to the store on a miss. The object sub-cache is deliberately
// never populated on read (spec §4.1).
func (c *Cache) GetObject(id execmodel.ObjectID) (execmodel.Object, bool, error) {
	if obj, ok := c.objects.Get(id); ok {
		return obj, true, nil
	}
	obj, found, err := c.store.GetObject(id)
	if err != nil {
		return execmodel.Object{}, false, execmodel.WrapStoreError("GetObject", id, err)
	}
	return obj, found, nil
}

// GetObjectByKey returns the object at the exact version, reading through
// to the store on a miss. No negative caching.
func (c *Cache) GetObjectByKey(key execmodel.ObjectKey) (execmodel.Object, bool, error) {
	if obj, ok := c.objects.GetByKey(key); ok {
		return obj, true, nil
	}
	obj, found, err := c.store.GetObjectByKey(key)
	if err != nil {
		return execmodel.Object{}, false, execmodel.WrapStoreError("GetObjectByKey", key, err)
	}
	return obj, found, nil
}

// MultiGetObjectByKey resolves every key, preserving input order in the
// result. Cache hits are resolved immediately; misses are collected into
// one batch and issued as a single store call, then spliced back at their
// original indices (spec §4.1 P4).
func (c *Cache) MultiGetObjectByKey(keys []execmodel.ObjectKey) ([]execmodel.ObjectLookup, error) {
	results := make([]execmodel.ObjectLookup, len(keys))

	var missKeys []execmodel.ObjectKey
	var missIndices []int
	for i, key := range keys {
		if obj, ok := c.objects.GetByKey(key); ok {
			results[i] = execmodel.ObjectLookup{Object: obj, Found: true}
			continue
		}
		missKeys = append(missKeys, key)
		missIndices = append(missIndices, i)
	}

	if len(missKeys) == 0 {
		return results, nil
	}

	fetched, err := c.store.MultiGetObjectByKey(missKeys)
	if err != nil {
		return nil, execmodel.WrapStoreError("MultiGetObjectByKey", multiKeyStringer(missKeys), err)
	}
	for j, idx := range missIndices {
		results[idx] = fetched[j]
	}
	return results, nil
}

// GetPackageObject returns the package object for id, reading through to
// the store on a miss and rejecting a non-package object with
// *execmodel.ObjectAsPackageError.
func (c *Cache) GetPackageObject(id execmodel.ObjectID) (execmodel.PackageObject, bool, error) {
	return c.packages.Get(id)
}

// ForceReloadSystemPackages re-reads each id from the store, unconditionally
// refreshing the package cache. Called at epoch boundaries; a store read
// failure is fatal (spec §4.6 "Failure semantics").
func (c *Cache) ForceReloadSystemPackages(ids []execmodel.ObjectID) error {
	return c.packages.ForceReloadSystemPackages(ids)
}

// GetLastSharedObjectDeletionInfo returns the version and transaction
// digest of the most recent shared-deletion marker for id.
func (c *Cache) GetLastSharedObjectDeletionInfo(id execmodel.ObjectID, epoch execmodel.Epoch) (execmodel.Version, execmodel.TransactionDigest, bool, error) {
	return c.markers.GetLastSharedObjectDeletionInfo(id, epoch)
}

// GetDeletedSharedObjectPreviousTxDigest returns the transaction digest of
// the shared-deletion marker at the exact version.
func (c *Cache) GetDeletedSharedObjectPreviousTxDigest(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (execmodel.TransactionDigest, bool, error) {
	return c.markers.GetDeletedSharedObjectPreviousTxDigest(id, version, epoch)
}

// HaveReceivedObjectAtVersion reports whether a receive marker is recorded
// at the exact version.
func (c *Cache) HaveReceivedObjectAtVersion(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (bool, error) {
	return c.markers.HaveReceivedObjectAtVersion(id, version, epoch)
}

// GetTransactionObjects returns the objects snapshot cached for a
// transaction at signing time.
func (c *Cache) GetTransactionObjects(digest execmodel.TransactionDigest) ([]execmodel.Object, bool) {
	return c.txObjs.Get(digest)
}

// PutTransactionObjects records the objects snapshot read at signing time
// for a transaction, populated by the signing path.
func (c *Cache) PutTransactionObjects(digest execmodel.TransactionDigest, objects []execmodel.Object) {
	c.txObjs.Put(digest, objects)
}

// GetTransactionEffects returns the effects record for a transaction.
func (c *Cache) GetTransactionEffects(tx execmodel.TransactionDigest) (execmodel.TransactionEffects, bool) {
	return c.pending.EffectsForTx(tx)
}

// GetTransactionEffectsByDigest returns the effects record by its own
// digest.
func (c *Cache) GetTransactionEffectsByDigest(digest execmodel.TransactionEffectsDigest) (execmodel.TransactionEffects, bool) {
	return c.pending.EffectsByDigest(digest)
}

// GetPendingOutputs returns the still-unflushed outputs for a transaction.
func (c *Cache) GetPendingOutputs(tx execmodel.TransactionDigest) (execmodel.TransactionOutputs, bool) {
	return c.pending.PendingOutputs(tx)
}

// RemoveObjectVersion evicts one specific (id, version) from the object
// sub-cache. The removal primitive spec §5 requires for the external
// flusher, called once that version is durably persisted.
func (c *Cache) RemoveObjectVersion(key execmodel.ObjectKey) {
	c.objects.Remove(key)
}

// RemoveObjectID evicts every version cached for id, including the per-id
// entry itself. pkg/flusher does not call it.
func (c *Cache) RemoveObjectID(id execmodel.ObjectID) {
	c.objects.RemoveID(id)
}

// RemovePendingWrite evicts the pending-writes entry for tx. The second
// removal primitive spec §5 requires for the external flusher.
func (c *Cache) RemovePendingWrite(tx execmodel.TransactionDigest) {
	c.pending.RemovePending(tx)
}

// UpdateState atomically ingests one transaction's outputs in the fixed
// order spec §4.6 requires: markers first, then child objects, then
// non-child objects and packages, then the effects/digest/pending triad.
// It never fails at this layer (spec §6); all inserts are against
// in-memory structures.
func (c *Cache) UpdateState(epoch execmodel.Epoch, outputs execmodel.TransactionOutputs) {
	_ = epoch // not consulted on write; marker reads take their own epoch argument; see DESIGN.md

	for _, write := range outputs.Markers {
		c.markers.Insert(write)
	}

	for _, write := range outputs.Written {
		if write.Object.IsChild {
			c.objects.Put(write.Object)
		}
	}

	for _, write := range outputs.Written {
		if write.Object.IsChild {
			continue
		}
		c.objects.Put(write.Object)
		if write.Object.IsPackage {
			c.packages.Insert(execmodel.NewPackageObject(write.Object))
		}
	}

	c.pending.RecordExecuted(outputs)
}

type multiKeyStringer []execmodel.ObjectKey

func (k multiKeyStringer) String() string {
	s := "["
	for i, key := range k {
		if i > 0 {
			s += ","
		}
		s += key.String()
	}
	return s + "]"
}
