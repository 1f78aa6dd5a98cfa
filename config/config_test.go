package config

import (
	"path/filepath"
	"testing"

	"github.com/tolelom/utxochain/core"
)

func TestValidateRequiresFields(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to fail without a genesis pub_key")
	}
	cfg.Genesis.PubKey = "abc123"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Genesis.PubKey = "abc123"
	cfg.SeedPeers = []SeedPeer{{ID: "node1", Addr: "localhost:9001"}}

	path := filepath.Join(t.TempDir(), "config.json")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.NodeID != cfg.NodeID || loaded.Genesis.PubKey != cfg.Genesis.PubKey {
		t.Fatalf("round-tripped config mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestBuildGenesisProducesValidPoW(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Genesis.PubKey = "deadbeef"
	block := cfg.BuildGenesis()
	if block.Tx.Outputs[0].PubKey != "deadbeef" {
		t.Fatalf("genesis output pubkey mismatch: %s", block.Tx.Outputs[0].PubKey)
	}
	if !core.VerifyPoW(block) {
		t.Fatal("genesis block did not pass VerifyPoW")
	}
}

func TestPeerIDsIncludesSelf(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedPeers = []SeedPeer{{ID: "peer1", Addr: "a"}, {ID: "peer2", Addr: "b"}}
	ids := cfg.PeerIDs()
	if len(ids) != 3 || ids[0] != cfg.NodeID {
		t.Fatalf("unexpected peer IDs: %v", ids)
	}
}
