package core

import "sync"

// Pool is a node's set of pending, unconfirmed transactions. Entries leave
// the pool once this node mines or accepts a block carrying their
// transaction, whether or not that block becomes the head; a peer's reorg
// can push previously confirmed transactions back in.
type Pool struct {
	mu  sync.Mutex
	txs []*Transaction
}

func NewPool() *Pool {
	return &Pool{}
}

// Append adds tx to the pool. Duplicate numbers are not filtered: the same
// transaction appended twice is held twice, and nothing verifies a
// transaction before it reaches the pool.
func (p *Pool) Append(tx *Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txs = append(p.txs, tx)
}

// Remove deletes every pooled transaction with the given number, in place.
// Called by Node once a transaction is confirmed into a block — mined
// locally or accepted from the inbox — so a repooled transaction cannot
// sit forever in a pool nobody drains.
func (p *Pool) Remove(number string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.txs[:0]
	for _, tx := range p.txs {
		if tx.Number != number {
			kept = append(kept, tx)
		}
	}
	p.txs = kept
}

// Snapshot returns a copy of the pending transactions, oldest first.
func (p *Pool) Snapshot() []*Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Transaction, len(p.txs))
	copy(out, p.txs)
	return out
}

// Len reports how many transactions are pending.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.txs)
}
