package flusher

import (
	"context"

	"github.com/lumenforge/execcache/execmodel"
)

// Persister is the durable-write side a flush worker drains to. Satisfied
// by internal/sqlstore.Store's Put* methods, declared locally so this
// package doesn't depend on sqlstore directly (any durable backend can
// supply it).
type Persister interface {
	PutObject(ctx context.Context, obj execmodel.Object) error
	PutMarker(ctx context.Context, write execmodel.MarkerWrite) error
	PutEffects(ctx context.Context, effects execmodel.TransactionEffects) error
}

// CacheEvictor is the slice of execcache.Cache a flush worker needs to
// shrink the cache once an item's outputs are durably persisted.
type CacheEvictor interface {
	RemoveObjectVersion(key execmodel.ObjectKey)
	RemovePendingWrite(tx execmodel.TransactionDigest)
}

// Worker persists one item's transaction outputs and then evicts them from
// the cache. It is the unit of work a Pool's lanes invoke, retried with
// exponential backoff by the pool on error.
type Worker struct {
	name      string
	persister Persister
	evictor   CacheEvictor
}

// NewWorker constructs a Worker named name, persisting through persister
// and evicting through evictor.
func NewWorker(name string, persister Persister, evictor CacheEvictor) *Worker {
	return &Worker{name: name, persister: persister, evictor: evictor}
}

// Name identifies the worker in logs, mirroring the original pipeline's
// task_name field.
func (w *Worker) Name() string { return w.name }

// Process persists item's written objects, markers, and effects, then
// evicts the corresponding entries from the cache. A persistence failure
// leaves the cache untouched so the pool's retry sees the same item again.
func (w *Worker) Process(ctx context.Context, item Item) error {
	outputs := item.Outputs

	for _, write := range outputs.Written {
		if err := w.persister.PutObject(ctx, write.Object); err != nil {
			return err
		}
	}
	for _, write := range outputs.Markers {
		if err := w.persister.PutMarker(ctx, write); err != nil {
			return err
		}
	}
	if err := w.persister.PutEffects(ctx, outputs.Effects); err != nil {
		return err
	}

	for _, write := range outputs.Written {
		w.evictor.RemoveObjectVersion(execmodel.ObjectKey{ID: write.ID, Version: write.Object.Version})
	}
	w.evictor.RemovePendingWrite(outputs.Transaction.Digest())
	return nil
}
