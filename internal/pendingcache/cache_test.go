package pendingcache

import (
	"testing"

	"github.com/lumenforge/execcache/execmodel"
)

func testOutputs(seed string) execmodel.TransactionOutputs {
	tx := execmodel.NewTransactionDigest(seed)
	effectsDigest := execmodel.TransactionEffectsDigest(execmodel.NewDigest([]byte("effects:" + seed)))
	return execmodel.TransactionOutputs{
		Transaction: execmodel.Transaction{DigestValue: tx},
		Effects: execmodel.TransactionEffects{
			TransactionDigest: tx,
			EffectsDigest:     effectsDigest,
			Success:           true,
		},
	}
}

func TestCache_RecordExecuted_VisibleAcrossAllThreeMaps(t *testing.T) {
	c := New()
	outputs := testOutputs("a")
	c.RecordExecuted(outputs)

	effectsDigest, ok := c.EffectsDigestForTx(outputs.Transaction.Digest())
	if !ok || effectsDigest != outputs.Effects.Digest() {
		t.Fatalf("expected effects digest mapping to be visible")
	}

	effects, ok := c.EffectsByDigest(effectsDigest)
	if !ok || effects.TransactionDigest != outputs.Transaction.Digest() {
		t.Fatalf("expected effects record to be visible")
	}

	pending, ok := c.PendingOutputs(outputs.Transaction.Digest())
	if !ok || pending.Transaction.Digest() != outputs.Transaction.Digest() {
		t.Fatalf("expected pending outputs to be visible")
	}
}

func TestCache_EffectsForTx(t *testing.T) {
	c := New()
	outputs := testOutputs("b")
	c.RecordExecuted(outputs)

	effects, ok := c.EffectsForTx(outputs.Transaction.Digest())
	if !ok || effects.Digest() != outputs.Effects.Digest() {
		t.Fatalf("expected EffectsForTx to resolve through both maps")
	}
}

func TestCache_RemovePending_LeavesEffectsQueryable(t *testing.T) {
	c := New()
	outputs := testOutputs("c")
	c.RecordExecuted(outputs)

	c.RemovePending(outputs.Transaction.Digest())

	if _, ok := c.PendingOutputs(outputs.Transaction.Digest()); ok {
		t.Fatalf("expected pending entry removed")
	}
	if _, ok := c.EffectsForTx(outputs.Transaction.Digest()); !ok {
		t.Fatalf("expected effects to remain queryable after pending removal")
	}
	if c.Len() != 0 {
		t.Fatalf("expected pending count 0, got %d", c.Len())
	}
}

func TestCache_RemoveEffects(t *testing.T) {
	c := New()
	outputs := testOutputs("d")
	c.RecordExecuted(outputs)

	c.RemoveEffects(outputs.Transaction.Digest())

	if _, ok := c.EffectsDigestForTx(outputs.Transaction.Digest()); ok {
		t.Fatalf("expected digest mapping removed")
	}
	if _, ok := c.EffectsByDigest(outputs.Effects.Digest()); ok {
		t.Fatalf("expected effects record removed")
	}
}
