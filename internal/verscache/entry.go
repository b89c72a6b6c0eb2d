// Package verscache implements the ordered, per-identity version map that
// backs both the object sub-cache and the marker sub-cache (spec §4.1,
// §4.3). Both need the same shape: "for this id, give me the value at the
// largest version, or at one specific version, in O(log n)".
//
// Because the marker sub-cache lives inside a bounded cache that returns
// values by value (sturdyc), the map itself has to be reachable through a
// shared handle so a writer's insert after a reader fetched the handle is
// still visible to that reader. Entry is that handle: a mutex guarding a
// google/btree ordered map, safe to store in either a bounded cache or a
// plain concurrent map.
package verscache

import "github.com/google/btree"

import "sync"

type versionedValue[V any] struct {
	version Version
	value   V
}

// Version is a version number in the ordered map. It is a plain uint64 so
// this package has no dependency on execmodel (kept a leaf package,
// reusable for both objects and markers without an import cycle).
type Version = uint64

func less[V any](a, b versionedValue[V]) bool {
	return a.version < b.version
}

// Entry is a mutex-protected, version-ordered map of one identity's
// versions to values. The zero value is not usable; construct with New.
type Entry[V any] struct {
	mu   sync.Mutex
	tree *btree.BTreeG[versionedValue[V]]
}

// New constructs an empty Entry.
func New[V any]() *Entry[V] {
	return &Entry[V]{tree: btree.NewG(32, less[V])}
}

// Insert records value at version, replacing any existing value at that
// version. Versions are expected (by the caller, per spec I2) to be unique
// per insert sequence, but Insert itself tolerates overwrites rather than
// asserting, since a replay of the same transaction output is a caller
// bug, not a cache-detectable one.
func (e *Entry[V]) Insert(version Version, value V) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tree.ReplaceOrInsert(versionedValue[V]{version: version, value: value})
}

// Get returns the value at the exact version, if present.
func (e *Entry[V]) Get(version Version) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.tree.Get(versionedValue[V]{version: version})
	return item.value, ok
}

// Max returns the value at the largest cached version, if the entry holds
// any versions at all. Per invariant I1, a present Entry is never empty in
// steady state, but Max still reports ok=false for a transiently empty
// entry rather than panicking.
func (e *Entry[V]) Max() (version Version, value V, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, found := e.tree.Max()
	if !found {
		return 0, value, false
	}
	return item.version, item.value, true
}

// Len reports how many versions are currently held.
func (e *Entry[V]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Len()
}

// Delete removes the value at version, if present, and reports whether
// anything was removed.
func (e *Entry[V]) Delete(version Version) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, found := e.tree.Delete(versionedValue[V]{version: version})
	return found
}
