package network

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/tolelom/utxochain/core"
)

// DefaultMaxPeers is the default limit on simultaneous peer connections.
const DefaultMaxPeers = 50

// TCPTransport listens for incoming peers, dials configured ones, and
// implements core.Transport by sending length-prefixed JSON messages.
// Inbound blocks and pool transactions are handed to the local core.Node
// registered with SetNode.
type TCPTransport struct {
	nodeID     string
	listenAddr string
	tlsConfig  *tls.Config // nil -> plain TCP
	maxPeers   int

	mu    sync.RWMutex
	peers map[string]*Peer
	local *core.Node

	listener net.Listener
	stopCh   chan struct{}
}

// NewTCPTransport creates a transport that will listen on listenAddr once
// Start is called.
func NewTCPTransport(nodeID, listenAddr string, tlsCfg *tls.Config) *TCPTransport {
	return &TCPTransport{
		nodeID:     nodeID,
		listenAddr: listenAddr,
		tlsConfig:  tlsCfg,
		maxPeers:   DefaultMaxPeers,
		peers:      make(map[string]*Peer),
		stopCh:     make(chan struct{}),
	}
}

// SetNode registers the local core.Node that inbound messages are
// delivered to. Must be called before Start.
func (t *TCPTransport) SetNode(n *core.Node) {
	t.local = n
}

// Start begins accepting connections.
func (t *TCPTransport) Start() error {
	var ln net.Listener
	var err error
	if t.tlsConfig != nil {
		ln, err = tls.Listen("tcp", t.listenAddr, t.tlsConfig)
	} else {
		ln, err = net.Listen("tcp", t.listenAddr)
	}
	if err != nil {
		return fmt.Errorf("listen %s: %w", t.listenAddr, err)
	}
	t.listener = ln
	go t.acceptLoop()
	return nil
}

// Stop shuts the transport down, closing the listener and every peer
// connection.
func (t *TCPTransport) Stop() {
	close(t.stopCh)
	if t.listener != nil {
		t.listener.Close()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.peers {
		p.Close()
	}
}

// AddPeer dials addr and registers the resulting connection under id.
func (t *TCPTransport) AddPeer(id, addr string) error {
	peer, err := Connect(id, addr, t.tlsConfig)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.peers[id] = peer
	t.mu.Unlock()
	go t.readLoop(peer)

	hello, _ := json.Marshal(map[string]string{"node_id": t.nodeID})
	if err := peer.Send(Message{Type: MsgHello, Payload: hello}); err != nil {
		log.Printf("[network] send hello to %s: %v", id, err)
	}
	return nil
}

// Deliver implements core.Transport by sending block to the named peer.
func (t *TCPTransport) Deliver(peerID string, block *core.Block) error {
	peer, err := t.peerByID(peerID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(block)
	if err != nil {
		return fmt.Errorf("marshal block: %w", err)
	}
	return peer.Send(Message{Type: MsgBlock, Payload: data})
}

// AppendToPool implements core.Transport by sending tx to the named peer
// as a pool message.
func (t *TCPTransport) AppendToPool(peerID string, tx *core.Transaction) error {
	peer, err := t.peerByID(peerID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal tx: %w", err)
	}
	return peer.Send(Message{Type: MsgPoolTx, Payload: data})
}

func (t *TCPTransport) peerByID(id string) (*Peer, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	peer, ok := t.peers[id]
	if !ok {
		return nil, fmt.Errorf("network: unknown peer %q", id)
	}
	return peer, nil
}

func (t *TCPTransport) acceptLoop() {
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.stopCh:
				return
			default:
				log.Printf("[network] accept error: %v", err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
		}
		t.mu.RLock()
		peerCount := len(t.peers)
		t.mu.RUnlock()
		if peerCount >= t.maxPeers {
			log.Printf("[network] max peers (%d) reached, rejecting %s", t.maxPeers, conn.RemoteAddr())
			conn.Close()
			continue
		}
		peer := NewPeer(conn.RemoteAddr().String(), conn.RemoteAddr().String(), conn)
		t.mu.Lock()
		t.peers[peer.ID] = peer
		t.mu.Unlock()
		go t.readLoop(peer)
	}
}

func (t *TCPTransport) readLoop(peer *Peer) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[network] readLoop panic from %s: %v", peer.ID, r)
		}
		peer.Close()
		t.mu.Lock()
		delete(t.peers, peer.ID)
		t.mu.Unlock()
	}()
	for {
		msg, err := peer.Receive()
		if err != nil {
			return
		}
		t.dispatch(msg)
	}
}

func (t *TCPTransport) dispatch(msg Message) {
	if t.local == nil {
		return
	}
	switch msg.Type {
	case MsgBlock:
		var block core.Block
		if err := json.Unmarshal(msg.Payload, &block); err != nil {
			log.Printf("[network] unmarshal block: %v", err)
			return
		}
		t.local.Enqueue(&block)
	case MsgPoolTx:
		var tx core.Transaction
		if err := json.Unmarshal(msg.Payload, &tx); err != nil {
			log.Printf("[network] unmarshal pool tx: %v", err)
			return
		}
		t.local.AppendToPool(&tx)
	case MsgHello:
		// no handshake state to track beyond the TCP connection itself.
	}
}
