// Package flusher drains the cache's manually-evicted object and
// pending-writes entries to a durable store, giving the cache's removal
// primitives (execcache.Cache.RemoveObjectVersion, RemovePendingWrite) a
// caller. It is a minimal Go rendering of the dispatch/watermark idiom
// from the validator's checkpoint ingestion worker pool: a fixed pool of
// workers consumes items from a channel, retries failures with exponential
// backoff, and reports completion on a progress channel; the pool advances
// a contiguous low-water-mark sequence number only once every prior item
// has completed.
package flusher
