// Package pendingcache implements the effects/digest/pending-writes triad
// from spec §4.5: three parallel sharded concurrent maps, written together
// by update_state. RemovePending and RemoveEffects remove entries;
// pkg/flusher calls only RemovePending (through
// execcache.Cache.RemovePendingWrite), so effects and digest entries stay
// in the triad after a flush.
package pendingcache

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/lumenforge/execcache/execmodel"
)

// Cache is the manually-evicted effects/digest/pending-writes triad.
type Cache struct {
	effectsByDigest *xsync.MapOf[execmodel.TransactionEffectsDigest, execmodel.TransactionEffects]
	digestByTx      *xsync.MapOf[execmodel.TransactionDigest, execmodel.TransactionEffectsDigest]
	pendingByTx     *xsync.MapOf[execmodel.TransactionDigest, execmodel.TransactionOutputs]
}

// New constructs an empty triad.
func New() *Cache {
	return &Cache{
		effectsByDigest: xsync.NewMapOf[execmodel.TransactionEffectsDigest, execmodel.TransactionEffects](),
		digestByTx:      xsync.NewMapOf[execmodel.TransactionDigest, execmodel.TransactionEffectsDigest](),
		pendingByTx:     xsync.NewMapOf[execmodel.TransactionDigest, execmodel.TransactionOutputs](),
	}
}

// RecordExecuted inserts one transaction's outputs across all three maps,
// in the order §4.6 step 4 specifies: effects by effects-digest, then
// tx-digest -> effects-digest, then tx-digest -> pending outputs. A reader
// racing this call may observe the effects record before the pending
// write entry exists, in violation of nothing: I4 only requires that once
// the effects record *is* visible, the other two eventually are too by the
// time update_state returns, which holds here since all three writes
// happen before RecordExecuted returns.
func (c *Cache) RecordExecuted(outputs execmodel.TransactionOutputs) {
	effectsDigest := outputs.Effects.Digest()
	c.effectsByDigest.Store(effectsDigest, outputs.Effects)
	c.digestByTx.Store(outputs.Transaction.Digest(), effectsDigest)
	c.pendingByTx.Store(outputs.Transaction.Digest(), outputs)
}

// EffectsByDigest looks up an effects record by its own digest.
func (c *Cache) EffectsByDigest(digest execmodel.TransactionEffectsDigest) (execmodel.TransactionEffects, bool) {
	return c.effectsByDigest.Load(digest)
}

// EffectsDigestForTx returns the effects digest recorded for a transaction,
// i.e. answers "has this transaction executed?".
func (c *Cache) EffectsDigestForTx(tx execmodel.TransactionDigest) (execmodel.TransactionEffectsDigest, bool) {
	return c.digestByTx.Load(tx)
}

// EffectsForTx is a convenience combining EffectsDigestForTx and
// EffectsByDigest.
func (c *Cache) EffectsForTx(tx execmodel.TransactionDigest) (execmodel.TransactionEffects, bool) {
	digest, ok := c.digestByTx.Load(tx)
	if !ok {
		return execmodel.TransactionEffects{}, false
	}
	return c.effectsByDigest.Load(digest)
}

// PendingOutputs returns the still-unflushed outputs for a transaction.
func (c *Cache) PendingOutputs(tx execmodel.TransactionDigest) (execmodel.TransactionOutputs, bool) {
	return c.pendingByTx.Load(tx)
}

// RemovePending deletes a transaction's pending-writes entry. It does not
// remove the effects or digest entries, which keep answering "what were
// this transaction's effects" after the write has been flushed;
// RemoveEffects removes those.
func (c *Cache) RemovePending(tx execmodel.TransactionDigest) {
	c.pendingByTx.Delete(tx)
}

// RemoveEffects deletes the effects and digest-mapping entries for a
// transaction. Provided for completeness as a removal primitive; the
// default flusher (pkg/flusher) only calls RemovePending, matching the
// original source's comment that only pending_transaction_writes entries
// are removed as they are flushed.
func (c *Cache) RemoveEffects(tx execmodel.TransactionDigest) {
	if digest, ok := c.digestByTx.Load(tx); ok {
		c.effectsByDigest.Delete(digest)
	}
	c.digestByTx.Delete(tx)
}

// Len reports the number of still-pending (unflushed) transactions.
func (c *Cache) Len() int {
	return c.pendingByTx.Size()
}
