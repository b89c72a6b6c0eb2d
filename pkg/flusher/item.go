package flusher

import "github.com/lumenforge/execcache/execmodel"

// Item is one unit of flush work: a transaction whose pending outputs are
// ready to be durably persisted and then evicted from the cache. Sequence
// is caller-assigned and must be a dense, strictly increasing allocation
// order (e.g. the order transactions were ingested via UpdateState) so the
// pool's watermark advances correctly.
type Item struct {
	Sequence uint64
	Outputs  execmodel.TransactionOutputs
}
