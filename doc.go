// Package execcache implements an in-memory execution cache that sits in
// front of a durable object store in a blockchain validator. It absorbs
// the write traffic produced by transaction execution — newly written
// objects, per-object markers, transaction effects — and serves reads
// issued by transaction signing, execution, and effects lookup.
//
// The cache is composed of five sub-caches, each in its own internal
// package: objects (internal/objectcache), packages
// (internal/packagecache), markers (internal/markercache),
// transaction-objects (internal/txobjectcache), and the effects/digest/
// pending-writes triad (internal/pendingcache). Cache reads that miss fall
// through to a Store collaborator the caller supplies; writes are ingested
// atomically through UpdateState in a fixed order that preserves
// visibility invariants across concurrent readers.
package execcache
