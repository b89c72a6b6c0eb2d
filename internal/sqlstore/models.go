package sqlstore

import "github.com/uptrace/bun"

// objectRow is the durable row for one (id, version) object. IDs and
// digests are stored hex-encoded so they sort and compare the same way
// across SQLite and PostgreSQL without a binary column type mismatch.
type objectRow struct {
	bun.BaseModel `bun:"table:objects"`

	ID        string `bun:"id,pk"`
	Version   uint64 `bun:"version,pk"`
	Digest    string `bun:"digest,notnull"`
	IsPackage bool   `bun:"is_package,notnull"`
	IsChild   bool   `bun:"is_child,notnull"`
	Contents  []byte `bun:"contents"`
}

// markerRow is the durable row for one (id, version) marker.
type markerRow struct {
	bun.BaseModel `bun:"table:markers"`

	ObjectID string `bun:"object_id,pk"`
	Version  uint64 `bun:"version,pk"`
	Kind     uint8  `bun:"kind,notnull"`
	TxDigest string `bun:"tx_digest,notnull"`
}

// effectsRow is the durable row for one transaction's effects record.
// Created/Mutated/Deleted are msgpack-encoded rather than normalized into
// a join table: they are read back as a unit and never queried by
// individual member, so a blob column avoids three extra tables for no
// query benefit.
type effectsRow struct {
	bun.BaseModel `bun:"table:effects"`

	EffectsDigest     string `bun:"effects_digest,pk"`
	TransactionDigest string `bun:"transaction_digest,notnull,unique"`
	Success           bool   `bun:"success,notnull"`
	CreatedBlob       []byte `bun:"created_blob"`
	MutatedBlob       []byte `bun:"mutated_blob"`
	DeletedBlob       []byte `bun:"deleted_blob"`
}
