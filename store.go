package execcache

import "github.com/lumenforge/execcache/execmodel"

// Store is the durable object store the cache falls through to on a miss
// and forwards no-op-at-this-layer concerns to (per spec §6, "Store
// interface"). A reference implementation lives in internal/sqlstore; this
// interface is the entire contract callers need to satisfy with their own
// durable backend.
type Store interface {
	// GetObject returns the object at its live (highest-known-to-the-store)
	// version, or Found=false if id does not exist.
	GetObject(id execmodel.ObjectID) (execmodel.Object, bool, error)
	// GetObjectByKey returns the object at the exact version.
	GetObjectByKey(key execmodel.ObjectKey) (execmodel.Object, bool, error)
	// MultiGetObjectByKey returns one result per input key, in input order.
	MultiGetObjectByKey(keys []execmodel.ObjectKey) ([]execmodel.ObjectLookup, error)
	// GetLastSharedObjectDeletionInfo returns the version and transaction
	// digest of the most recent shared-deletion marker recorded for id as
	// of epoch.
	GetLastSharedObjectDeletionInfo(id execmodel.ObjectID, epoch execmodel.Epoch) (execmodel.Version, execmodel.TransactionDigest, bool, error)
	// GetDeletedSharedObjectPreviousTxDigest returns the transaction digest
	// of the shared-deletion marker at the exact version.
	GetDeletedSharedObjectPreviousTxDigest(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (execmodel.TransactionDigest, bool, error)
	// HaveReceivedObjectAtVersion reports whether a receive marker is
	// recorded at the exact version.
	HaveReceivedObjectAtVersion(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (bool, error)
}
