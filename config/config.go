// Package config loads and validates a node's JSON configuration file:
// this node's identity, its peer set, and the fixed genesis allocation
// every node in the simulation must agree on. cmd/simnode loads no file;
// it starts from DefaultConfig and uses BuildGenesis.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tolelom/utxochain/core"
)

// SeedPeer identifies another node reachable through the configured
// transport.
type SeedPeer struct {
	ID   string `json:"id"`
	Addr string `json:"addr"` // host:port; unused by simnet, required for network.TCPTransport
}

// GenesisAllocation describes the single fixed output genesis mining
// produces: one recipient, one value. There are no genesis inputs.
type GenesisAllocation struct {
	PubKey string `json:"pub_key"`
	Value  uint64 `json:"value"`
}

// Config holds everything a node needs to start.
type Config struct {
	NodeID    string            `json:"node_id"`
	DataDir   string            `json:"data_dir"`
	P2PPort   int               `json:"p2p_port"`
	SeedPeers []SeedPeer        `json:"seed_peers,omitempty"`
	Genesis   GenesisAllocation `json:"genesis"`
	LogLevel  string            `json:"log_level,omitempty"` // "std" or "zap"; empty -> "std"
}

// DefaultConfig returns a 3-node development topology: node0 plus seed
// peers node1 and node2, the same three-peer shape the linear
// mine-and-broadcast and fork-resolution scenarios exercise. The genesis
// allocation's PubKey is left empty; callers building a real simulation
// must fill it in from a wallet before use.
func DefaultConfig() *Config {
	return &Config{
		NodeID:  "node0",
		DataDir: "./data",
		P2PPort: 30303,
		SeedPeers: []SeedPeer{
			{ID: "node1", Addr: "127.0.0.1:30304"},
			{ID: "node2", Addr: "127.0.0.1:30305"},
		},
		Genesis: GenesisAllocation{Value: 1000},
	}
}

// Load reads a JSON config file from path and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON to path.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that all required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.NodeID == "" {
		return fmt.Errorf("node_id must not be empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.P2PPort <= 0 || c.P2PPort > 65535 {
		return fmt.Errorf("p2p_port must be 1-65535, got %d", c.P2PPort)
	}
	if c.Genesis.PubKey == "" {
		return fmt.Errorf("genesis.pub_key must not be empty")
	}
	for _, p := range c.SeedPeers {
		if p.ID == "" || p.Addr == "" {
			return fmt.Errorf("seed_peers entries require both id and addr")
		}
	}
	switch c.LogLevel {
	case "", "std", "zap":
	default:
		return fmt.Errorf("log_level must be \"std\" or \"zap\", got %q", c.LogLevel)
	}
	return nil
}

// PeerIDs returns just the IDs of the configured seed peers, plus this
// node's own ID — the full peer set a core.Node is constructed with.
func (c *Config) PeerIDs() []string {
	ids := make([]string, 0, len(c.SeedPeers)+1)
	ids = append(ids, c.NodeID)
	for _, p := range c.SeedPeers {
		ids = append(ids, p.ID)
	}
	return ids
}

// BuildGenesis mines the fixed genesis block described by c.Genesis: a
// single transaction with no inputs and one output to c.Genesis.PubKey.
func (c *Config) BuildGenesis() *core.Block {
	outputs := []core.Output{{Value: c.Genesis.Value, PubKey: c.Genesis.PubKey}}
	number := core.ComputeNumber(nil, outputs)
	tx := &core.Transaction{Number: number, Inputs: nil, Outputs: outputs, Sig: ""}
	return core.MineGenesis(tx, nil)
}
