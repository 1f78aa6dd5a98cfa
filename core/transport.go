package core

// Transport is how a Node reaches its peers. The core package only depends
// on this interface; network.TCPTransport and simnet.LocalTransport provide
// the concrete delivery mechanisms (real sockets vs. in-process handoff).
type Transport interface {
	// Deliver hands a mined or relayed block to the named peer's inbox.
	Deliver(peerID string, block *Block) error

	// AppendToPool hands a displaced or relayed transaction to the named
	// peer's pending pool, bypassing that peer's own inbox queue — this is
	// how reorg fallout re-pools transactions into every OTHER node.
	AppendToPool(peerID string, tx *Transaction) error
}
