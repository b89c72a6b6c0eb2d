// Package packagecache implements the package sub-cache from spec §4.2:
// ObjectID -> PackageObject, size-bounded with approximate LRU eviction,
// aggressively cached because packages are immutable once published.
package packagecache

import (
	"github.com/lumenforge/execcache/execmodel"
	"github.com/lumenforge/execcache/internal/boundedcache"
)

// ObjectReader is the slice of the durable store this sub-cache needs on a
// miss: read one object by id. Declared locally (rather than imported from
// the root execcache package) so this package stays a leaf and the root
// package's concrete Store type satisfies it structurally.
type ObjectReader interface {
	GetObject(id execmodel.ObjectID) (execmodel.Object, bool, error)
}

// Cache is the package sub-cache.
type Cache struct {
	bounded *boundedcache.Cache[execmodel.PackageObject]
	store   ObjectReader
}

// New constructs a package sub-cache backed by store for misses.
func New(cfg boundedcache.Config, store ObjectReader) (*Cache, error) {
	bounded, err := boundedcache.New[execmodel.PackageObject](cfg)
	if err != nil {
		return nil, err
	}
	return &Cache{bounded: bounded, store: store}, nil
}

// Get returns the package object for id. On a cache hit, and only when
// execmodel.Debug is set, it re-reads the store and asserts the content
// digest still matches — the cheap invariant check the spec calls for to
// catch cache/store drift. On a miss, it reads through to the store,
// rejects non-package objects with *execmodel.ObjectAsPackageError, and
// caches successful package reads.
func (c *Cache) Get(id execmodel.ObjectID) (execmodel.PackageObject, bool, error) {
	if cached, ok := c.bounded.Get(id.String()); ok {
		if execmodel.Debug {
			if err := c.assertDigestMatchesStore(id, cached); err != nil {
				return execmodel.PackageObject{}, false, err
			}
		}
		return cached, true, nil
	}

	obj, found, err := c.store.GetObject(id)
	if err != nil {
		return execmodel.PackageObject{}, false, execmodel.WrapStoreError("GetPackageObject", id, err)
	}
	if !found {
		return execmodel.PackageObject{}, false, nil
	}
	if !obj.IsPackage {
		return execmodel.PackageObject{}, false, &execmodel.ObjectAsPackageError{ID: id}
	}

	pkg := execmodel.NewPackageObject(obj)
	c.bounded.Set(id.String(), pkg)
	return pkg, true, nil
}

func (c *Cache) assertDigestMatchesStore(id execmodel.ObjectID, cached execmodel.PackageObject) error {
	current, found, err := c.store.GetObject(id)
	if err != nil {
		return execmodel.WrapStoreError("GetPackageObject(debug-check)", id, err)
	}
	if !found {
		return nil
	}
	if current.Digest != cached.Digest() {
		return &execmodel.InvariantError{
			Invariant: "I5",
			Detail:    "package object cache is inconsistent for package " + id.String(),
		}
	}
	return nil
}

// ForceReloadSystemPackages re-reads each id from the store and inserts it
// as a package, unconditionally refreshing any existing cache entry. Per
// spec §4.2, an id absent from the store is silently tolerated (a newly
// announced system package may not exist yet); any other store error is
// fatal, since this is only called at epoch boundaries where inconsistency
// is not tolerated.
func (c *Cache) ForceReloadSystemPackages(ids []execmodel.ObjectID) error {
	for _, id := range ids {
		obj, found, err := c.store.GetObject(id)
		if err != nil {
			return execmodel.WrapStoreError("ForceReloadSystemPackages", id, err)
		}
		if !found {
			continue
		}
		if !obj.IsPackage {
			return &execmodel.ObjectAsPackageError{ID: id}
		}
		c.bounded.Set(id.String(), execmodel.NewPackageObject(obj))
	}
	return nil
}

// Insert caches pkg directly, bypassing the store. Used by the write path
// (§4.6 step 3) when update_state writes a new package object.
func (c *Cache) Insert(pkg execmodel.PackageObject) {
	c.bounded.Set(pkg.ID().String(), pkg)
}
