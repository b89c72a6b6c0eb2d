package wiring

import (
	"context"
	"testing"

	"github.com/lumenforge/execcache/execmodel"
)

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults(context.Background())
	if err != nil {
		t.Fatalf("NewContainerWithDefaults: %v", err)
	}
	if container.Cache() == nil || container.Store() == nil || container.Logger() == nil {
		t.Fatalf("expected all singletons populated")
	}
}

func TestContainer_CacheReadsThroughToStore(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainerWithDefaults(ctx)
	if err != nil {
		t.Fatalf("NewContainerWithDefaults: %v", err)
	}

	id := execmodel.NewObjectID("wired")
	if err := container.Store().PutObject(ctx, execmodel.Object{ID: id, Version: 1}); err != nil {
		t.Fatalf("PutObject: %v", err)
	}

	obj, found, err := container.Cache().GetObject(id)
	if err != nil || !found || obj.ID != id {
		t.Fatalf("expected cache to read through to store, got obj=%v found=%v err=%v", obj, found, err)
	}
}
