package execcache

import (
	"errors"
	"testing"

	"github.com/lumenforge/execcache/execmodel"
)

type memStore struct {
	objects      map[execmodel.ObjectKey]execmodel.Object
	liveVersion  map[execmodel.ObjectID]execmodel.Version
	deletionInfo map[execmodel.ObjectID]struct {
		version execmodel.Version
		tx      execmodel.TransactionDigest
	}
	multiGetCalls int
}

func newMemStore() *memStore {
	return &memStore{
		objects:     map[execmodel.ObjectKey]execmodel.Object{},
		liveVersion: map[execmodel.ObjectID]execmodel.Version{},
		deletionInfo: map[execmodel.ObjectID]struct {
			version execmodel.Version
			tx      execmodel.TransactionDigest
		}{},
	}
}

func (s *memStore) put(obj execmodel.Object) {
	s.objects[execmodel.ObjectKey{ID: obj.ID, Version: obj.Version}] = obj
	if cur, ok := s.liveVersion[obj.ID]; !ok || obj.Version > cur {
		s.liveVersion[obj.ID] = obj.Version
	}
}

func (s *memStore) GetObject(id execmodel.ObjectID) (execmodel.Object, bool, error) {
	v, ok := s.liveVersion[id]
	if !ok {
		return execmodel.Object{}, false, nil
	}
	obj := s.objects[execmodel.ObjectKey{ID: id, Version: v}]
	return obj, true, nil
}

func (s *memStore) GetObjectByKey(key execmodel.ObjectKey) (execmodel.Object, bool, error) {
	obj, ok := s.objects[key]
	return obj, ok, nil
}

func (s *memStore) MultiGetObjectByKey(keys []execmodel.ObjectKey) ([]execmodel.ObjectLookup, error) {
	s.multiGetCalls++
	out := make([]execmodel.ObjectLookup, len(keys))
	for i, key := range keys {
		obj, ok := s.objects[key]
		out[i] = execmodel.ObjectLookup{Object: obj, Found: ok}
	}
	return out, nil
}

func (s *memStore) GetLastSharedObjectDeletionInfo(id execmodel.ObjectID, epoch execmodel.Epoch) (execmodel.Version, execmodel.TransactionDigest, bool, error) {
	info, ok := s.deletionInfo[id]
	return info.version, info.tx, ok, nil
}

func (s *memStore) GetDeletedSharedObjectPreviousTxDigest(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (execmodel.TransactionDigest, bool, error) {
	info, ok := s.deletionInfo[id]
	if !ok || info.version != version {
		return execmodel.TransactionDigest{}, false, nil
	}
	return info.tx, true, nil
}

func (s *memStore) HaveReceivedObjectAtVersion(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (bool, error) {
	return false, nil
}

func newTestCache(t *testing.T, store Store) *Cache {
	t.Helper()
	c, err := NewCache(DefaultConfig(), store)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	return c
}

func TestCache_GetObject_MissFallsThroughToStore(t *testing.T) {
	store := newMemStore()
	id := execmodel.NewObjectID("root")
	store.put(execmodel.Object{ID: id, Version: 1, Digest: execmodel.NewDigest([]byte("d"))})

	c := newTestCache(t, store)
	obj, found, err := c.GetObject(id)
	if err != nil || !found || obj.Version != 1 {
		t.Fatalf("expected store fallback hit, got obj=%v found=%v err=%v", obj, found, err)
	}
}

func TestCache_UpdateState_ChildVisibleBeforeOrWithParent(t *testing.T) {
	store := newMemStore()
	c := newTestCache(t, store)

	parentID := execmodel.NewObjectID("parent")
	childID := execmodel.NewObjectID("child")
	tx := execmodel.Transaction{DigestValue: execmodel.NewTransactionDigest("tx1")}

	outputs := execmodel.TransactionOutputs{
		Transaction: tx,
		Effects: execmodel.TransactionEffects{
			TransactionDigest: tx.Digest(),
			EffectsDigest:     execmodel.TransactionEffectsDigest(execmodel.NewDigest([]byte("effects1"))),
			Success:           true,
		},
		Written: []execmodel.ObjectWrite{
			{ID: parentID, Object: execmodel.Object{ID: parentID, Version: 1, IsChild: false}},
			{ID: childID, Object: execmodel.Object{ID: childID, Version: 1, IsChild: true}},
		},
	}

	c.UpdateState(1, outputs)

	if _, found, _ := c.GetObject(parentID); !found {
		t.Fatalf("expected parent visible after UpdateState")
	}
	if _, found, _ := c.GetObject(childID); !found {
		t.Fatalf("expected child visible after UpdateState")
	}
}

func TestCache_UpdateState_PackageInsertedIntoPackageCache(t *testing.T) {
	store := newMemStore()
	c := newTestCache(t, store)

	pkgID := execmodel.NewObjectID("pkg")
	tx := execmodel.Transaction{DigestValue: execmodel.NewTransactionDigest("tx2")}
	outputs := execmodel.TransactionOutputs{
		Transaction: tx,
		Effects: execmodel.TransactionEffects{
			TransactionDigest: tx.Digest(),
			EffectsDigest:     execmodel.TransactionEffectsDigest(execmodel.NewDigest([]byte("effects2"))),
		},
		Written: []execmodel.ObjectWrite{
			{ID: pkgID, Object: execmodel.Object{ID: pkgID, Version: 1, IsPackage: true}},
		},
	}
	c.UpdateState(1, outputs)

	pkg, found, err := c.GetPackageObject(pkgID)
	if err != nil || !found {
		t.Fatalf("expected package cached directly from UpdateState, got found=%v err=%v", found, err)
	}
	if pkg.ID() != pkgID {
		t.Fatalf("unexpected package id")
	}
}

func TestCache_UpdateState_EffectsAndPendingVisibleTogether(t *testing.T) {
	store := newMemStore()
	c := newTestCache(t, store)

	tx := execmodel.Transaction{DigestValue: execmodel.NewTransactionDigest("tx3")}
	effectsDigest := execmodel.TransactionEffectsDigest(execmodel.NewDigest([]byte("effects3")))
	outputs := execmodel.TransactionOutputs{
		Transaction: tx,
		Effects:     execmodel.TransactionEffects{TransactionDigest: tx.Digest(), EffectsDigest: effectsDigest, Success: true},
	}
	c.UpdateState(1, outputs)

	if _, found := c.GetTransactionEffects(tx.Digest()); !found {
		t.Fatalf("expected effects visible")
	}
	if _, found := c.GetTransactionEffectsByDigest(effectsDigest); !found {
		t.Fatalf("expected effects visible by digest")
	}
	if _, found := c.GetPendingOutputs(tx.Digest()); !found {
		t.Fatalf("expected pending outputs visible")
	}
}

func TestCache_MultiGetObjectByKey_PreservesOrderAndBatchesMisses(t *testing.T) {
	store := newMemStore()
	idA := execmodel.NewObjectID("a")
	idB := execmodel.NewObjectID("b")
	idC := execmodel.NewObjectID("c")
	store.put(execmodel.Object{ID: idB, Version: 1})
	store.put(execmodel.Object{ID: idC, Version: 1})

	c := newTestCache(t, store)
	// Warm the cache for idA only.
	c.UpdateState(1, execmodel.TransactionOutputs{
		Transaction: execmodel.Transaction{DigestValue: execmodel.NewTransactionDigest("warm")},
		Effects:     execmodel.TransactionEffects{TransactionDigest: execmodel.NewTransactionDigest("warm")},
		Written:     []execmodel.ObjectWrite{{ID: idA, Object: execmodel.Object{ID: idA, Version: 1}}},
	})

	keys := []execmodel.ObjectKey{
		{ID: idB, Version: 1},
		{ID: idA, Version: 1},
		{ID: idC, Version: 1},
	}
	results, err := c.MultiGetObjectByKey(keys)
	if err != nil {
		t.Fatalf("MultiGetObjectByKey: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, key := range keys {
		if !results[i].Found || results[i].Object.ID != key.ID {
			t.Fatalf("result[%d] mismatch: %+v", i, results[i])
		}
	}
	if store.multiGetCalls != 1 {
		t.Fatalf("expected exactly one batched store call, got %d", store.multiGetCalls)
	}
}

func TestCache_RemoveObjectVersion(t *testing.T) {
	store := newMemStore()
	c := newTestCache(t, store)
	id := execmodel.NewObjectID("r")
	c.UpdateState(1, execmodel.TransactionOutputs{
		Transaction: execmodel.Transaction{DigestValue: execmodel.NewTransactionDigest("rtx")},
		Effects:     execmodel.TransactionEffects{TransactionDigest: execmodel.NewTransactionDigest("rtx")},
		Written:     []execmodel.ObjectWrite{{ID: id, Object: execmodel.Object{ID: id, Version: 1}}},
	})

	c.RemoveObjectVersion(execmodel.ObjectKey{ID: id, Version: 1})

	// With the version evicted from cache and nothing in the store, a read
	// should now miss entirely.
	if _, found, err := c.GetObject(id); found || err != nil {
		t.Fatalf("expected miss after RemoveObjectVersion, got found=%v err=%v", found, err)
	}
}

func TestCache_ForceReloadSystemPackages_RejectsNonPackage(t *testing.T) {
	store := newMemStore()
	id := execmodel.NewObjectID("notpkg")
	store.put(execmodel.Object{ID: id, Version: 1, IsPackage: false})

	c := newTestCache(t, store)
	err := c.ForceReloadSystemPackages([]execmodel.ObjectID{id})
	var pkgErr *execmodel.ObjectAsPackageError
	if !errors.As(err, &pkgErr) {
		t.Fatalf("expected ObjectAsPackageError, got %v", err)
	}
}
