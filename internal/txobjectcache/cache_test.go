package txobjectcache

import (
	"testing"

	"github.com/lumenforge/execcache/execmodel"
	"github.com/lumenforge/execcache/internal/boundedcache"
)

func TestCache_PutGet(t *testing.T) {
	c, err := New(boundedcache.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	digest := execmodel.NewTransactionDigest("tx1")
	objs := []execmodel.Object{
		{ID: execmodel.NewObjectID("a"), Version: 1},
		{ID: execmodel.NewObjectID("b"), Version: 1},
	}
	c.Put(digest, objs)

	got, ok := c.Get(digest)
	if !ok || len(got) != 2 {
		t.Fatalf("expected 2 cached objects, got %v ok=%v", got, ok)
	}
}

func TestCache_MissReturnsFalse(t *testing.T) {
	c, _ := New(boundedcache.DefaultConfig())
	if _, ok := c.Get(execmodel.NewTransactionDigest("missing")); ok {
		t.Fatalf("expected miss for uncached digest")
	}
}

func TestCache_Remove(t *testing.T) {
	c, _ := New(boundedcache.DefaultConfig())
	digest := execmodel.NewTransactionDigest("tx2")
	c.Put(digest, []execmodel.Object{{ID: execmodel.NewObjectID("c"), Version: 1}})

	c.Remove(digest)
	if _, ok := c.Get(digest); ok {
		t.Fatalf("expected entry removed")
	}
}
