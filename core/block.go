package core

import (
	"strconv"
	"strings"

	"github.com/tolelom/utxochain/crypto"
)

// Block is a header-only container for exactly one transaction plus the
// proof-of-work that admits it to a chain. Non-goal: bodies with more than
// one transaction.
type Block struct {
	Tx    *Transaction `json:"tx"`
	Prev  string       `json:"prev"`  // hex hash of the parent block's canonical serialization
	Nonce int64        `json:"nonce"` // the winning nonce
	Pow   string       `json:"pow"`   // sha256(tx || prev || nonce), hex
}

// CanonicalBytes is the block's own canonical serialization: the
// transaction's canonical bytes, then prev, then nonce, then pow — in that
// order. This is what a child block's Prev field is a hash of.
func (b *Block) CanonicalBytes() []byte {
	var sb strings.Builder
	sb.Write(b.Tx.CanonicalBytes())
	sb.WriteString(b.Prev)
	sb.WriteString(strconv.FormatInt(b.Nonce, 10))
	sb.WriteString(b.Pow)
	return []byte(sb.String())
}

// Hash returns H(CanonicalBytes(b)), the value a child block references in
// its own Prev field.
func (b *Block) Hash() string {
	return crypto.Hash(b.CanonicalBytes())
}

// powMessage is tx || prev || nonce, the input the proof-of-work digest is
// computed over (deliberately excludes Pow itself).
func powMessage(tx *Transaction, prev string, nonce int64) []byte {
	var sb strings.Builder
	sb.Write(tx.CanonicalBytes())
	sb.WriteString(prev)
	sb.WriteString(strconv.FormatInt(nonce, 10))
	return []byte(sb.String())
}
