package core

// LedgerExport is the read-only JSON view of a node's ledger: every block
// it has ever accepted, in insertion order (not chain order).
type LedgerExport struct {
	Blocks []*Block `json:"Blocks"`
}

// Export snapshots the ledger's nodes into their underlying blocks, in
// insertion order.
func (n *Node) Export() LedgerExport {
	nodes := n.ledger.Nodes()
	blocks := make([]*Block, len(nodes))
	for i, tn := range nodes {
		blocks[i] = tn.Block
	}
	return LedgerExport{Blocks: blocks}
}
