package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/lumenforge/execcache/execmodel"
)

// Store is the reference execcache.Store implementation, backed by a
// bun.DB against either SQLite or PostgreSQL (see OpenSQLite/OpenPostgres).
type Store struct {
	db     *bun.DB
	logger *slog.Logger
}

// New wraps an already-open, already-migrated bun.DB. If logger is nil,
// slog.Default() is used.
func New(db *bun.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// PutObject inserts or overwrites the durable row for obj. Not part of
// execcache.Store (the cache never writes to the store directly — an
// external flusher does), but needed by the flusher and by tests/examples
// that seed the store.
func (s *Store) PutObject(ctx context.Context, obj execmodel.Object) error {
	row := &objectRow{
		ID:        objectIDHex(obj.ID),
		Version:   uint64(obj.Version),
		Digest:    digestHex(obj.Digest),
		IsPackage: obj.IsPackage,
		IsChild:   obj.IsChild,
		Contents:  obj.Contents,
	}
	_, err := s.db.NewInsert().Model(row).
		On("CONFLICT (id, version) DO UPDATE").
		Set("digest = EXCLUDED.digest").
		Set("is_package = EXCLUDED.is_package").
		Set("is_child = EXCLUDED.is_child").
		Set("contents = EXCLUDED.contents").
		Exec(ctx)
	return err
}

// PutMarker inserts or overwrites the durable row for a marker write.
func (s *Store) PutMarker(ctx context.Context, write execmodel.MarkerWrite) error {
	row := &markerRow{
		ObjectID: objectIDHex(write.Key.ID),
		Version:  uint64(write.Key.Version),
		Kind:     uint8(write.Value.Kind),
		TxDigest: write.Value.TxDigest.String(),
	}
	_, err := s.db.NewInsert().Model(row).
		On("CONFLICT (object_id, version) DO UPDATE").
		Set("kind = EXCLUDED.kind").
		Set("tx_digest = EXCLUDED.tx_digest").
		Exec(ctx)
	return err
}

// PutEffects inserts or overwrites the durable row for a transaction's
// effects. batchID is a google/uuid-minted correlation id threaded through
// the structured log line, so a flusher draining many transactions in one
// pass can be traced as a unit in logs without the store needing to know
// anything about the flusher's own bookkeeping.
func (s *Store) PutEffects(ctx context.Context, effects execmodel.TransactionEffects) error {
	batchID := uuid.New()
	createdBlob, err := encodeKeys(effects.Created)
	if err != nil {
		return err
	}
	mutatedBlob, err := encodeKeys(effects.Mutated)
	if err != nil {
		return err
	}
	deletedBlob, err := encodeKeys(effects.Deleted)
	if err != nil {
		return err
	}

	row := &effectsRow{
		EffectsDigest:     effects.EffectsDigest.String(),
		TransactionDigest: effects.TransactionDigest.String(),
		Success:           effects.Success,
		CreatedBlob:       createdBlob,
		MutatedBlob:       mutatedBlob,
		DeletedBlob:       deletedBlob,
	}
	_, err = s.db.NewInsert().Model(row).
		On("CONFLICT (effects_digest) DO UPDATE").
		Set("success = EXCLUDED.success").
		Set("created_blob = EXCLUDED.created_blob").
		Set("mutated_blob = EXCLUDED.mutated_blob").
		Set("deleted_blob = EXCLUDED.deleted_blob").
		Exec(ctx)
	s.logger.Debug("sqlstore: persisted effects",
		"batch_id", batchID,
		"transaction_digest", effects.TransactionDigest.String(),
	)
	return err
}

// GetObject returns the object at its highest durably persisted version.
func (s *Store) GetObject(id execmodel.ObjectID) (execmodel.Object, bool, error) {
	var row objectRow
	err := s.db.NewSelect().Model(&row).
		Where("id = ?", objectIDHex(id)).
		OrderExpr("version DESC").
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return execmodel.Object{}, false, nil
	}
	if err != nil {
		return execmodel.Object{}, false, err
	}
	obj, err := rowToObject(row)
	return obj, err == nil, err
}

// GetObjectByKey returns the object at the exact version.
func (s *Store) GetObjectByKey(key execmodel.ObjectKey) (execmodel.Object, bool, error) {
	var row objectRow
	err := s.db.NewSelect().Model(&row).
		Where("id = ? AND version = ?", objectIDHex(key.ID), uint64(key.Version)).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return execmodel.Object{}, false, nil
	}
	if err != nil {
		return execmodel.Object{}, false, err
	}
	obj, err := rowToObject(row)
	return obj, err == nil, err
}

// MultiGetObjectByKey resolves every key against a single IN-style query,
// preserving input order in the result.
func (s *Store) MultiGetObjectByKey(keys []execmodel.ObjectKey) ([]execmodel.ObjectLookup, error) {
	results := make([]execmodel.ObjectLookup, len(keys))
	if len(keys) == 0 {
		return results, nil
	}

	index := make(map[execmodel.ObjectKey]int, len(keys))
	ids := make([]string, 0, len(keys))
	for i, key := range keys {
		index[key] = i
		ids = append(ids, objectIDHex(key.ID))
	}

	var rows []objectRow
	if err := s.db.NewSelect().Model(&rows).
		Where("id IN (?)", bun.In(ids)).
		Scan(context.Background()); err != nil {
		return nil, err
	}

	for _, row := range rows {
		id, err := execmodel.ObjectIDFromHex(row.ID)
		if err != nil {
			return nil, err
		}
		key := execmodel.ObjectKey{ID: id, Version: execmodel.Version(row.Version)}
		i, wanted := index[key]
		if !wanted {
			continue
		}
		obj, err := rowToObject(row)
		if err != nil {
			return nil, err
		}
		results[i] = execmodel.ObjectLookup{Object: obj, Found: true}
	}
	return results, nil
}

// GetLastSharedObjectDeletionInfo returns the highest-version SharedDeleted
// marker recorded for id. epoch is accepted for interface symmetry with
// the cache's marker sub-cache but is not part of the reference schema's
// key; see DESIGN.md.
func (s *Store) GetLastSharedObjectDeletionInfo(id execmodel.ObjectID, epoch execmodel.Epoch) (execmodel.Version, execmodel.TransactionDigest, bool, error) {
	var row markerRow
	err := s.db.NewSelect().Model(&row).
		Where("object_id = ? AND kind = ?", objectIDHex(id), uint8(execmodel.MarkerSharedDeleted)).
		OrderExpr("version DESC").
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return 0, execmodel.TransactionDigest{}, false, nil
	}
	if err != nil {
		return 0, execmodel.TransactionDigest{}, false, err
	}
	tx, err := execmodel.TransactionDigestFromHex(row.TxDigest)
	if err != nil {
		return 0, execmodel.TransactionDigest{}, false, err
	}
	return execmodel.Version(row.Version), tx, true, nil
}

// GetDeletedSharedObjectPreviousTxDigest returns the SharedDeleted marker's
// transaction digest at the exact version.
func (s *Store) GetDeletedSharedObjectPreviousTxDigest(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (execmodel.TransactionDigest, bool, error) {
	var row markerRow
	err := s.db.NewSelect().Model(&row).
		Where("object_id = ? AND version = ? AND kind = ?", objectIDHex(id), uint64(version), uint8(execmodel.MarkerSharedDeleted)).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return execmodel.TransactionDigest{}, false, nil
	}
	if err != nil {
		return execmodel.TransactionDigest{}, false, err
	}
	tx, err := execmodel.TransactionDigestFromHex(row.TxDigest)
	if err != nil {
		return execmodel.TransactionDigest{}, false, err
	}
	return tx, true, nil
}

// HaveReceivedObjectAtVersion reports whether a Received marker exists at
// the exact version.
func (s *Store) HaveReceivedObjectAtVersion(id execmodel.ObjectID, version execmodel.Version, epoch execmodel.Epoch) (bool, error) {
	count, err := s.db.NewSelect().Model((*markerRow)(nil)).
		Where("object_id = ? AND version = ? AND kind = ?", objectIDHex(id), uint64(version), uint8(execmodel.MarkerReceived)).
		Count(context.Background())
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func rowToObject(row objectRow) (execmodel.Object, error) {
	id, err := execmodel.ObjectIDFromHex(row.ID)
	if err != nil {
		return execmodel.Object{}, err
	}
	digest, err := digestFromHex(row.Digest)
	if err != nil {
		return execmodel.Object{}, err
	}
	return execmodel.Object{
		ID:        id,
		Version:   execmodel.Version(row.Version),
		Digest:    digest,
		IsPackage: row.IsPackage,
		IsChild:   row.IsChild,
		Contents:  row.Contents,
	}, nil
}
