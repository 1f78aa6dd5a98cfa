package simnet

import (
	"testing"

	"github.com/tolelom/utxochain/core"
)

type fakeNode struct {
	blocks []*core.Block
	txs    []*core.Transaction
}

func (f *fakeNode) Enqueue(b *core.Block)            { f.blocks = append(f.blocks, b) }
func (f *fakeNode) AppendToPool(tx *core.Transaction) { f.txs = append(f.txs, tx) }

func TestLocalTransportRoutesToRegisteredPeer(t *testing.T) {
	transport := NewLocalTransport()
	a := &fakeNode{}
	transport.Register("A", a)

	block := &core.Block{Prev: "x"}
	if err := transport.Deliver("A", block); err != nil {
		t.Fatal(err)
	}
	if len(a.blocks) != 1 || a.blocks[0] != block {
		t.Fatal("expected block delivered to A")
	}

	tx := &core.Transaction{Number: "tx1"}
	if err := transport.AppendToPool("A", tx); err != nil {
		t.Fatal(err)
	}
	if len(a.txs) != 1 || a.txs[0] != tx {
		t.Fatal("expected tx appended to A's pool")
	}
}

func TestLocalTransportUnknownPeerErrors(t *testing.T) {
	transport := NewLocalTransport()
	if err := transport.Deliver("ghost", &core.Block{}); err == nil {
		t.Fatal("expected error delivering to unregistered peer")
	}
	if err := transport.AppendToPool("ghost", &core.Transaction{}); err == nil {
		t.Fatal("expected error appending to unregistered peer's pool")
	}
}
