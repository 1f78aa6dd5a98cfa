// Package simnet provides an in-process core.Transport for running several
// core.Node values inside one Go process — the single-process simulator
// shape, with each node's receive queue and pool reached by direct method
// call instead of a socket.
package simnet

import "github.com/tolelom/utxochain/core"

// node is the minimal surface LocalTransport needs from a core.Node,
// satisfied by *core.Node. Declared as an interface so tests can supply a
// fake node without touching the wiring below.
type node interface {
	Enqueue(block *core.Block)
	AppendToPool(tx *core.Transaction)
}

// LocalTransport routes Deliver and AppendToPool calls directly to the
// named peer's methods. Register every node before any node starts
// mining or draining its inbox.
type LocalTransport struct {
	nodes map[string]node
}

// NewLocalTransport creates an empty transport; nodes are registered with
// Register.
func NewLocalTransport() *LocalTransport {
	return &LocalTransport{nodes: make(map[string]node)}
}

// Register makes n reachable under peerID. Typically called once per node
// immediately after the node is constructed with this transport.
func (t *LocalTransport) Register(peerID string, n node) {
	t.nodes[peerID] = n
}

// Deliver pushes block directly onto the named peer's inbox.
func (t *LocalTransport) Deliver(peerID string, block *core.Block) error {
	n, ok := t.nodes[peerID]
	if !ok {
		return errUnknownPeer(peerID)
	}
	n.Enqueue(block)
	return nil
}

// AppendToPool pushes tx directly into the named peer's pool.
func (t *LocalTransport) AppendToPool(peerID string, tx *core.Transaction) error {
	n, ok := t.nodes[peerID]
	if !ok {
		return errUnknownPeer(peerID)
	}
	n.AppendToPool(tx)
	return nil
}

type errUnknownPeer string

func (e errUnknownPeer) Error() string { return "simnet: unknown peer " + string(e) }
