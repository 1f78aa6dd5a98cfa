package core

import (
	"math/big"
	"strings"

	"github.com/tolelom/utxochain/corelog"
	"github.com/tolelom/utxochain/crypto"
)

// targetHex is the fixed 256-bit difficulty bound: leading byte 0x07,
// everything after it set. A block's proof-of-work digest, read as an
// unsigned big-endian integer, must be <= this value.
var targetHex = "07" + strings.Repeat("f", 62)

// GenesisPrevHash is the fixed 64-char marker a genesis block uses in place
// of a real parent hash — there is no block to hash.
const GenesisPrevHash = "0000000000000000000000000000000000000000000000000000000000000000"

var target = mustParseHex(targetHex)

func mustParseHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("core: invalid pow target constant")
	}
	return n
}

// meetsTarget reports whether digestHex, compared as an unsigned integer,
// is at most the difficulty target. Comparing as big.Int rather than as a
// lexicographic string keeps the comparison correct even if digest widths
// ever stop being uniform.
func meetsTarget(digestHex string) bool {
	n, ok := new(big.Int).SetString(digestHex, 16)
	if !ok {
		return false
	}
	return n.Cmp(target) <= 0
}

// Mine verifies tx against the chain rooted at head, then searches for a
// nonce whose digest meets the difficulty target. The search never
// early-exits on an incoming block — a racing peer's block is handled on
// a later inbox tick.
func Mine(tx *Transaction, head *TreeNode, sink corelog.Sink) (*Block, bool) {
	if !VerifyTx(head, tx, sink) {
		return nil, false
	}
	prevHash := head.Block.Hash()
	return mineOnto(tx, prevHash, sink), true
}

// MineGenesis mines the fixed genesis block: same search, but onto
// GenesisPrevHash instead of a real parent. The resulting block still
// satisfies the same proof-of-work invariant as every other block — it is
// simply never run through VerifyTx, since it is fixed after construction.
func MineGenesis(tx *Transaction, sink corelog.Sink) *Block {
	return mineOnto(tx, GenesisPrevHash, sink)
}

func mineOnto(tx *Transaction, prevHash string, sink corelog.Sink) *Block {
	var nonce int64
	for {
		digest := hashPowMessage(tx, prevHash, nonce)
		if meetsTarget(digest) {
			if sink != nil {
				sink.Info("mined block: prev=%s nonce=%d pow=%s", short(prevHash), nonce, short(digest))
			}
			return &Block{Tx: tx, Prev: prevHash, Nonce: nonce, Pow: digest}
		}
		nonce++
	}
}

// VerifyPoW recomputes the block's proof-of-work digest and checks both
// that it matches the stored Pow field and that it meets the difficulty
// target.
func VerifyPoW(b *Block) bool {
	digest := hashPowMessage(b.Tx, b.Prev, b.Nonce)
	return digest == b.Pow && meetsTarget(b.Pow)
}

func hashPowMessage(tx *Transaction, prev string, nonce int64) string {
	return crypto.Hash(powMessage(tx, prev, nonce))
}

func short(s string) string {
	if len(s) <= 12 {
		return s
	}
	return s[:12]
}
