package core

import (
	"strconv"
	"strings"

	"github.com/tolelom/utxochain/crypto"
)

// Output is a single payment to a recipient's public key.
type Output struct {
	Value  uint64 `json:"value"`
	PubKey string `json:"pubKey"` // hex Ed25519 public key
}

// Equal reports whether two outputs are structurally identical.
func (o Output) Equal(other Output) bool {
	return o.Value == other.Value && o.PubKey == other.PubKey
}

func (o Output) canonical(b *strings.Builder) {
	b.WriteString(strconv.FormatUint(o.Value, 10))
	b.WriteString(o.PubKey)
}

// Input references one output of a prior transaction by that transaction's
// number, carrying a copy of the output it claims to spend.
type Input struct {
	Number string `json:"number"`
	Output Output `json:"output"`
}

// Equal reports whether two inputs name the same prior output.
func (in Input) Equal(other Input) bool {
	return in.Number == other.Number && in.Output.Equal(other.Output)
}

func (in Input) canonical(b *strings.Builder) {
	b.WriteString(in.Number)
	in.Output.canonical(b)
}

// Transaction is the atomic unit of value transfer: some inputs spending
// prior outputs, some new outputs, all from a single sender, signed once.
type Transaction struct {
	Number  string   `json:"number"`
	Inputs  []Input  `json:"input"`
	Outputs []Output `json:"output"`
	Sig     string   `json:"sig"`
}

func canonicalInputsOutputs(inputs []Input, outputs []Output) []byte {
	var b strings.Builder
	for _, in := range inputs {
		in.canonical(&b)
	}
	for _, out := range outputs {
		out.canonical(&b)
	}
	return []byte(b.String())
}

// ComputeNumber returns the content hash that identifies a transaction with
// these inputs and outputs: H(canonical_serialization(inputs, outputs)).
// The number itself is never folded into its own input.
func ComputeNumber(inputs []Input, outputs []Output) string {
	return crypto.Hash(canonicalInputsOutputs(inputs, outputs))
}

// SigningBody is the byte sequence the sender's signature covers: inputs,
// then outputs, then the transaction number.
func SigningBody(inputs []Input, outputs []Output, number string) []byte {
	body := canonicalInputsOutputs(inputs, outputs)
	return append(body, []byte(number)...)
}

// CanonicalBytes is the transaction's own canonical serialization, used as
// input to a block's proof-of-work and to a block's hash: number, then
// inputs, then outputs, then signature.
func (tx *Transaction) CanonicalBytes() []byte {
	var b strings.Builder
	b.WriteString(tx.Number)
	for _, in := range tx.Inputs {
		in.canonical(&b)
	}
	for _, out := range tx.Outputs {
		out.canonical(&b)
	}
	b.WriteString(tx.Sig)
	return []byte(b.String())
}

// verifyNumberHash checks that tx.Number is the correct content hash of its
// inputs and outputs.
func (tx *Transaction) verifyNumberHash() bool {
	return tx.Number != "" && tx.Number == ComputeNumber(tx.Inputs, tx.Outputs)
}

// senderPubKey returns the common pubKey across all inputs, failing if the
// inputs are empty or do not all name the same key.
func (tx *Transaction) senderPubKey() (string, bool) {
	if len(tx.Inputs) == 0 {
		return "", false
	}
	sender := tx.Inputs[0].Output.PubKey
	for _, in := range tx.Inputs {
		if in.Output.PubKey != sender {
			return "", false
		}
	}
	return sender, true
}

// valueIn and valueOut sum an input's/output's claimed value.
func (tx *Transaction) valueIn() uint64 {
	var sum uint64
	for _, in := range tx.Inputs {
		sum += in.Output.Value
	}
	return sum
}

func (tx *Transaction) valueOut() uint64 {
	var sum uint64
	for _, out := range tx.Outputs {
		sum += out.Value
	}
	return sum
}
