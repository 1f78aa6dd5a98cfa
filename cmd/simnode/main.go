// Command simnode runs a small in-process simulation of several peer
// nodes: it mines a genesis block, then for each of -rounds rounds lets one
// node (taking turns in order) mine and broadcast a transaction and drains
// every inbox, and finally prints each node's ledger export as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/tolelom/utxochain/config"
	"github.com/tolelom/utxochain/core"
	"github.com/tolelom/utxochain/corelog"
	"github.com/tolelom/utxochain/simnet"
	"github.com/tolelom/utxochain/storage"
	"github.com/tolelom/utxochain/wallet"
)

func main() {
	numNodes := flag.Int("nodes", 3, "number of simulated peers")
	rounds := flag.Int("rounds", 1, "number of mine-and-broadcast rounds")
	logKind := flag.String("log", "std", "log sink: std or zap")
	dataDir := flag.String("data-dir", "./data/simnode", "directory each node's LevelDB ledger store is opened under")
	flag.Parse()

	if *numNodes < 1 {
		log.Fatal("simnode: -nodes must be >= 1")
	}

	miner, err := wallet.Generate()
	if err != nil {
		log.Fatalf("generate genesis wallet: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Genesis.PubKey = miner.PubKeyHex()
	genesis := cfg.BuildGenesis()

	transport := simnet.NewLocalTransport()

	ids := make([]string, *numNodes)
	for i := range ids {
		ids[i] = fmt.Sprintf("node%d", i)
	}

	nodes := make([]*core.Node, *numNodes)
	wallets := make([]*wallet.Wallet, *numNodes)
	stores := make([]*storage.LedgerStore, *numNodes)
	for i, id := range ids {
		sink, err := buildSink(*logKind, id)
		if err != nil {
			log.Fatalf("build sink for %s: %v", id, err)
		}
		w, err := wallet.Generate()
		if err != nil {
			log.Fatalf("generate wallet for %s: %v", id, err)
		}
		wallets[i] = w
		nodes[i] = core.NewNode(id, genesis, ids, transport, sink)
		transport.Register(id, nodes[i])

		db, err := storage.NewLevelDB(filepath.Join(*dataDir, id))
		if err != nil {
			log.Fatalf("open ledger store for %s: %v", id, err)
		}
		defer db.Close()
		store, err := storage.NewLedgerStore(db)
		if err != nil {
			log.Fatalf("open ledger store for %s: %v", id, err)
		}
		stores[i] = store
	}

	// The genesis output belongs to miner, not any simulated node's own
	// wallet, so the first spend in each round must come from whichever
	// node currently holds the spendable chain tip's output. Round 0
	// always spends the genesis output; later rounds spend the previous
	// round's sole output, tracked as we go.
	spendable := wallet.UTXO{Number: genesis.Tx.Number, Output: genesis.Tx.Outputs[0]}
	holder := miner

	for r := 0; r < *rounds; r++ {
		proposer := nodes[r%len(nodes)]
		recipient := wallets[(r+1)%len(wallets)]

		tx, err := holder.BuildTransaction(
			[]wallet.UTXO{spendable},
			[]core.Output{{Value: spendable.Output.Value, PubKey: recipient.PubKeyHex()}},
		)
		if err != nil {
			log.Fatalf("round %d: build tx: %v", r, err)
		}

		block, ok := proposer.MineBlock(tx)
		if !ok {
			log.Fatalf("round %d: %s failed to mine tx %s", r, proposer.ID(), tx.Number)
		}
		log.Printf("round %d: %s mined block %s at height %d", r, proposer.ID(), short(block.Hash()), proposer.Head().Height)

		for _, n := range nodes {
			for n.Inbox().Len() > 0 {
				n.ProcessOneInbound()
			}
		}

		for i, n := range nodes {
			if err := persistNewBlocks(stores[i], n.Ledger()); err != nil {
				log.Fatalf("round %d: persist ledger for %s: %v", r, n.ID(), err)
			}
		}

		spendable = wallet.UTXO{Number: tx.Number, Output: tx.Outputs[0]}
		holder = recipient
	}

	for i, n := range nodes {
		export := n.Export()
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			log.Fatalf("marshal export for %s: %v", n.ID(), err)
		}
		fmt.Printf("=== %s (head height %d, %d blocks persisted to %s) ===\n%s\n",
			n.ID(), n.Head().Height, stores[i].Len(), *dataDir, data)
	}
}

// persistNewBlocks writes every ledger entry not yet recorded in store,
// in insertion order, so a restarted node could rebuild from disk.
func persistNewBlocks(store *storage.LedgerStore, ledger *core.Ledger) error {
	nodes := ledger.Nodes()
	for i := store.Len(); i < len(nodes); i++ {
		if err := store.Put(nodes[i].Block); err != nil {
			return err
		}
	}
	return nil
}

func buildSink(kind, nodeID string) (corelog.Sink, error) {
	switch kind {
	case "zap":
		return corelog.NewZapSink(nodeID)
	case "std":
		return corelog.StdSink{Prefix: fmt.Sprintf("[%s] ", nodeID)}, nil
	default:
		return nil, fmt.Errorf("unknown log kind %q", kind)
	}
}

func short(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:12]
}
