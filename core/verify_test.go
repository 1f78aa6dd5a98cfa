package core

import (
	"testing"

	"github.com/tolelom/utxochain/corelog"
	"github.com/tolelom/utxochain/crypto"
)

// buildChain mines a genesis block whose single output (value 50) belongs
// to sender, returning the genesis TreeNode (height 1) as the head and the
// signing key that owns that output.
func buildChain(t *testing.T) (head *TreeNode, sender crypto.SigningKey) {
	t.Helper()
	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	genesisOutputs := []Output{{Value: 50, PubKey: pub.Hex()}}
	genesisTx := &Transaction{Number: ComputeNumber(nil, genesisOutputs), Outputs: genesisOutputs}
	genesisBlock := MineGenesis(genesisTx, nil)
	genesisNode := &TreeNode{Block: genesisBlock, Height: 1}

	return genesisNode, priv
}

func signedSpend(t *testing.T, priv crypto.SigningKey, inputs []Input, outputs []Output) *Transaction {
	t.Helper()
	number := ComputeNumber(inputs, outputs)
	sig := crypto.Sign(priv, SigningBody(inputs, outputs, number))
	return &Transaction{Number: number, Inputs: inputs, Outputs: outputs, Sig: sig}
}

func TestVerifyTxAcceptsValidSpend(t *testing.T) {
	head, priv := buildChain(t)
	genesisTx := head.Block.Tx

	inputs := []Input{{Number: genesisTx.Number, Output: genesisTx.Outputs[0]}}
	outputs := []Output{{Value: 50, PubKey: priv.Public().Hex()}}
	tx := signedSpend(t, priv, inputs, outputs)

	if !VerifyTx(head, tx, corelog.Nop{}) {
		t.Fatal("expected valid spend to verify")
	}
}

func TestVerifyTxRejectsValueMismatch(t *testing.T) {
	head, priv := buildChain(t)
	genesisTx := head.Block.Tx

	inputs := []Input{{Number: genesisTx.Number, Output: genesisTx.Outputs[0]}}
	outputs := []Output{{Value: 49, PubKey: priv.Public().Hex()}}
	tx := signedSpend(t, priv, inputs, outputs)

	if VerifyTx(head, tx, corelog.Nop{}) {
		t.Fatal("expected value mismatch to be rejected")
	}
}

func TestVerifyTxRejectsUnresolvedInput(t *testing.T) {
	head, priv := buildChain(t)

	inputs := []Input{{Number: "does-not-exist", Output: Output{Value: 50, PubKey: priv.Public().Hex()}}}
	outputs := []Output{{Value: 50, PubKey: priv.Public().Hex()}}
	tx := signedSpend(t, priv, inputs, outputs)

	if VerifyTx(head, tx, corelog.Nop{}) {
		t.Fatal("expected unresolved input to be rejected")
	}
}

func TestVerifyTxRejectsBadSignature(t *testing.T) {
	head, priv := buildChain(t)
	genesisTx := head.Block.Tx

	other, _, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	inputs := []Input{{Number: genesisTx.Number, Output: genesisTx.Outputs[0]}}
	outputs := []Output{{Value: 50, PubKey: priv.Public().Hex()}}
	number := ComputeNumber(inputs, outputs)
	badSig := crypto.Sign(other, SigningBody(inputs, outputs, number)) // wrong key signs
	tx := &Transaction{Number: number, Inputs: inputs, Outputs: outputs, Sig: badSig}

	if VerifyTx(head, tx, corelog.Nop{}) {
		t.Fatal("expected mismatched signature to be rejected")
	}
}

func TestVerifyTxRejectsNonUniformSender(t *testing.T) {
	head, priv := buildChain(t)
	genesisTx := head.Block.Tx
	other, otherPub, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	_ = other

	inputs := []Input{
		{Number: genesisTx.Number, Output: genesisTx.Outputs[0]},
		{Number: genesisTx.Number, Output: Output{Value: 1, PubKey: otherPub.Hex()}},
	}
	outputs := []Output{{Value: 51, PubKey: priv.Public().Hex()}}
	number := ComputeNumber(inputs, outputs)
	tx := &Transaction{Number: number, Inputs: inputs, Outputs: outputs, Sig: "irrelevant"}

	if VerifyTx(head, tx, corelog.Nop{}) {
		t.Fatal("expected non-uniform sender to be rejected")
	}
}

func TestVerifyTxRejectsAlreadyOnChain(t *testing.T) {
	head, priv := buildChain(t)
	genesisTx := head.Block.Tx

	inputs := []Input{{Number: genesisTx.Number, Output: genesisTx.Outputs[0]}}
	outputs := []Output{{Value: 50, PubKey: priv.Public().Hex()}}
	tx := signedSpend(t, priv, inputs, outputs)

	spendBlock := &Block{Tx: tx, Prev: head.Block.Hash()}
	spendNode := &TreeNode{Parent: head, Block: spendBlock, Height: head.Height + 1}

	if VerifyTx(spendNode, tx, corelog.Nop{}) {
		t.Fatal("expected already-confirmed tx to be rejected")
	}
}

// TestVerifyTxDoubleSpendQuirk exercises the intentionally preserved
// behavior: a double-spend is only caught when it reuses the FIRST input
// of the new transaction. A transaction whose first input is fresh but
// whose second input collides with a confirmed spend is accepted, because
// the inner walk returns after the first input's full-chain check.
func TestVerifyTxDoubleSpendQuirk(t *testing.T) {
	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	genesisOutputs := []Output{
		{Value: 10, PubKey: pub.Hex()},
		{Value: 20, PubKey: pub.Hex()},
	}
	genesisTx := &Transaction{Number: ComputeNumber(nil, genesisOutputs), Outputs: genesisOutputs}
	genesisBlock := MineGenesis(genesisTx, nil)
	genesisNode := &TreeNode{Block: genesisBlock, Height: 1}

	// Confirm a spend of output[0] only.
	spendInputs := []Input{{Number: genesisTx.Number, Output: genesisOutputs[0]}}
	spendOutputs := []Output{{Value: 10, PubKey: pub.Hex()}}
	spendTx := signedSpend(t, priv, spendInputs, spendOutputs)
	spendBlock := &Block{Tx: spendTx, Prev: genesisBlock.Hash()}
	spendNode := &TreeNode{Parent: genesisNode, Block: spendBlock, Height: 2}

	// A direct replay of the confirmed spend is caught: it is the identical
	// transaction, so the already-on-chain check rejects it.
	directReplay := signedSpend(t, priv, spendInputs, spendOutputs)
	if VerifyTx(spendNode, directReplay, corelog.Nop{}) {
		t.Fatal("expected direct replay of a confirmed input to be rejected")
	}

	// A transaction whose first input is the untouched output[1] and whose
	// second input replays the already-spent output[0] slips through,
	// because verifyNoDoubleSpend only walks history for the first input.
	sneaky := []Input{
		{Number: genesisTx.Number, Output: genesisOutputs[1]},
		{Number: genesisTx.Number, Output: genesisOutputs[0]},
	}
	sneakyOutputs := []Output{{Value: 30, PubKey: pub.Hex()}}
	sneakyTx := signedSpend(t, priv, sneaky, sneakyOutputs)

	if !VerifyTx(spendNode, sneakyTx, corelog.Nop{}) {
		t.Fatal("expected the preserved quirk to let a second-input double-spend through")
	}
}
