// Package wallet provides key management and UTXO transaction-building
// helpers. It sits outside the consensus core — the core only ever
// consumes the resulting core.Transaction values.
package wallet

import (
	"fmt"

	"github.com/tolelom/utxochain/core"
	"github.com/tolelom/utxochain/crypto"
)

// Wallet holds a key pair and builds transactions spending outputs known
// to belong to it.
type Wallet struct {
	priv crypto.SigningKey
	pub  crypto.VerifyingKey
}

// New creates a Wallet from an existing signing key.
func New(priv crypto.SigningKey) *Wallet {
	return &Wallet{priv: priv, pub: priv.Public()}
}

// Generate creates a Wallet with a freshly generated key pair.
func Generate() (*Wallet, error) {
	priv, _, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return New(priv), nil
}

// PrivKey returns the raw signing key (handle with care).
func (w *Wallet) PrivKey() crypto.SigningKey {
	return w.priv
}

// PubKeyHex returns the hex-encoded Ed25519 verifying key this wallet
// signs as.
func (w *Wallet) PubKeyHex() string {
	return w.pub.Hex()
}

// UTXO names one spendable output this wallet believes it owns: the
// transaction number that produced it, and the output itself.
type UTXO struct {
	Number string
	Output core.Output
}

// BuildTransaction spends the given UTXOs into the given recipient
// outputs, computing the number and signature itself. It does not check
// that the inputs actually resolve on any particular chain — that is the
// receiving node's job via core.VerifyTx.
func (w *Wallet) BuildTransaction(spend []UTXO, outputs []core.Output) (*core.Transaction, error) {
	if len(spend) == 0 {
		return nil, fmt.Errorf("wallet: cannot build a transaction with no inputs")
	}
	inputs := make([]core.Input, len(spend))
	for i, u := range spend {
		if u.Output.PubKey != w.PubKeyHex() {
			return nil, fmt.Errorf("wallet: utxo %d does not belong to this wallet", i)
		}
		inputs[i] = core.Input{Number: u.Number, Output: u.Output}
	}

	number := core.ComputeNumber(inputs, outputs)
	body := core.SigningBody(inputs, outputs, number)
	sig := crypto.Sign(w.priv, body)

	return &core.Transaction{
		Number:  number,
		Inputs:  inputs,
		Outputs: outputs,
		Sig:     sig,
	}, nil
}
