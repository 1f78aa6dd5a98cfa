package core

import (
	"fmt"

	"github.com/tolelom/utxochain/corelog"
)

// Node is one peer's complete consensus state: its ledger, preferred head,
// pending pool, inbound queue, and the means to reach its peers. Mutation
// only happens on the node's own driver tick (MineBlock or
// ProcessOneInbound) or via a direct peer append (Enqueue, AppendToPool) —
// there are no internal goroutines.
type Node struct {
	id        string
	ledger    *Ledger
	head      *HeadTracker
	pool      *Pool
	inbox     *Inbox
	peers     []string
	transport Transport
	sink      corelog.Sink
	emitter   *Emitter
}

// NewNode constructs a node rooted at genesis, with the given peer IDs
// reachable through transport. sink may be nil, in which case verification
// failures are logged nowhere.
func NewNode(id string, genesis *Block, peers []string, transport Transport, sink corelog.Sink) *Node {
	genesisNode := &TreeNode{Parent: nil, Block: genesis, Height: 1}
	return &Node{
		id:        id,
		ledger:    NewLedger(genesisNode),
		head:      NewHeadTracker(genesisNode),
		pool:      NewPool(),
		inbox:     NewInbox(),
		peers:     peers,
		transport: transport,
		sink:      sink,
		emitter:   NewEmitter(),
	}
}

func (n *Node) ID() string       { return n.id }
func (n *Node) Head() *TreeNode  { return n.head.Head() }
func (n *Node) Ledger() *Ledger  { return n.ledger }
func (n *Node) Pool() *Pool      { return n.pool }
func (n *Node) Inbox() *Inbox    { return n.inbox }
func (n *Node) Events() *Emitter { return n.emitter }
func (n *Node) Peers() []string  { return n.peers }

// Enqueue appends an inbound block to this node's receive queue. Called by
// a transport delivering a broadcast from some other node.
func (n *Node) Enqueue(block *Block) {
	n.inbox.Enqueue(block)
}

// AppendToPool appends tx to this node's pending pool. Called by a
// transport delivering a reorg's displaced transaction from some other
// node.
func (n *Node) AppendToPool(tx *Transaction) {
	n.pool.Append(tx)
}

// MineBlock builds, verifies, and mines a block carrying tx on top of the
// current head, appends it to the ledger, updates the head, and broadcasts
// it to every peer. Returns (nil, false) if tx fails verification against
// the current chain.
func (n *Node) MineBlock(tx *Transaction) (*Block, bool) {
	head := n.head.Head()
	block, ok := Mine(tx, head, n.sink)
	if !ok {
		n.emitter.Emit(Event{Type: EventTxRejected, NodeID: n.id, Data: tx.Number})
		return nil, false
	}

	node := &TreeNode{Parent: head, Block: block, Height: head.Height + 1}
	n.ledger.Append(node)
	advanced, displaced := n.head.Accept(node)
	n.repool(displaced)
	n.pool.Remove(tx.Number)

	n.emitter.Emit(Event{Type: EventBlockMined, NodeID: n.id, Data: BlockAcceptedData{
		Hash: block.Hash(), Height: node.Height, TxNumber: tx.Number, HeadMoved: advanced,
	}})

	n.broadcast(block)
	return block, true
}

// ProcessOneInbound drains at most one block from the inbox: finds its
// parent in the ledger, verifies the carried transaction against this
// node's own preferred chain head (not the block's parent — a competing
// fork's block is still checked against what this node currently
// believes, exactly as a freshly mined block is), and — on success —
// appends it and lets the head tracker decide whether the chain tip
// moves. A block whose parent is not yet known is dropped silently (it
// may arrive again via a later broadcast, or never — either is fine).
func (n *Node) ProcessOneInbound() {
	block, ok := n.inbox.Dequeue()
	if !ok {
		return
	}

	parent := n.ledger.FindParentOf(block)
	if parent == nil {
		if n.sink != nil {
			n.sink.Error(string(RejectOrphanBlock), fmt.Sprintf("no known parent for block with prev %s", short(block.Prev)))
		}
		n.emitter.Emit(Event{Type: EventBlockRejected, NodeID: n.id, Data: RejectedData{
			Kind: RejectOrphanBlock, Detail: "parent not in ledger",
		}})
		return
	}

	if !VerifyBlock(n.head.Head(), block, n.sink) {
		n.emitter.Emit(Event{Type: EventBlockRejected, NodeID: n.id, Data: RejectedData{
			Kind: RejectBadPoW, Detail: "block failed pow or tx verification",
		}})
		return
	}

	node := &TreeNode{Parent: parent, Block: block, Height: parent.Height + 1}
	n.ledger.Append(node)
	advanced, displaced := n.head.Accept(node)
	n.repool(displaced)
	n.pool.Remove(block.Tx.Number)

	n.emitter.Emit(Event{Type: EventBlockAccepted, NodeID: n.id, Data: BlockAcceptedData{
		Hash: block.Hash(), Height: node.Height, TxNumber: block.Tx.Number, HeadMoved: advanced,
	}})

	if len(displaced) > 0 {
		txs := make([]string, len(displaced))
		for i, d := range displaced {
			txs[i] = d.Block.Tx.Number
		}
		n.emitter.Emit(Event{Type: EventReorg, NodeID: n.id, Data: ReorgData{
			NewHead: block.Hash(), DisplacedTxs: txs, DisplacedTips: len(displaced),
		}})
	}
}

// broadcast delivers block to every peer other than self via the
// transport.
func (n *Node) broadcast(block *Block) {
	for _, peer := range n.peers {
		if peer == n.id {
			continue
		}
		if err := n.transport.Deliver(peer, block); err != nil && n.sink != nil {
			n.sink.Info("broadcast to %s failed: %v", peer, err)
		}
	}
}

// repool pushes each displaced block's transaction into every other peer's
// pool via the transport. The node's own pool is deliberately left
// untouched — re-pooling is a service this node performs for its peers,
// not a queue it drains itself.
func (n *Node) repool(displaced []*TreeNode) {
	for _, d := range displaced {
		for _, peer := range n.peers {
			if peer == n.id {
				continue
			}
			if err := n.transport.AppendToPool(peer, d.Block.Tx); err != nil && n.sink != nil {
				n.sink.Info("repool to %s failed: %v", peer, err)
			}
		}
	}
}
