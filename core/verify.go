package core

import (
	"fmt"

	"github.com/tolelom/utxochain/corelog"
	"github.com/tolelom/utxochain/crypto"
)

// VerifyTx walks the chain from head back to genesis and runs each required
// check in order, logging through sink and collapsing the result to a
// single bool. All checks run against the same chain snapshot (head); the
// transaction is not assumed to be attached to any particular block yet.
func VerifyTx(head *TreeNode, tx *Transaction, sink corelog.Sink) bool {
	if err := verifyNotOnChain(head, tx); err != nil {
		logReject(sink, err)
		return false
	}
	if err := verifyNumberHash(tx); err != nil {
		logReject(sink, err)
		return false
	}
	if err := verifyInputsResolve(head, tx); err != nil {
		logReject(sink, err)
		return false
	}
	if err := verifySenderAndSignature(tx); err != nil {
		logReject(sink, err)
		return false
	}
	if err := verifyNoDoubleSpend(head, tx); err != nil {
		logReject(sink, err)
		return false
	}
	if err := verifyValueConservation(tx); err != nil {
		logReject(sink, err)
		return false
	}
	return true
}

// VerifyBlock runs the two checks required before a received block is
// appended: a valid proof-of-work, and a transaction that passes VerifyTx
// against the receiving node's own preferred chain.
func VerifyBlock(head *TreeNode, block *Block, sink corelog.Sink) bool {
	if !VerifyPoW(block) {
		logReject(sink, reject(RejectBadPoW, fmt.Sprintf("pow %s does not satisfy target or digest mismatch", short(block.Pow))))
		return false
	}
	return VerifyTx(head, block.Tx, sink)
}

func logReject(sink corelog.Sink, err *rejection) {
	if sink != nil {
		sink.Error(string(err.kind), err.detail)
	}
}

// verifyNotOnChain ensures tx is not already included in a confirmed block.
func verifyNotOnChain(head *TreeNode, tx *Transaction) *rejection {
	for n := head; n != nil; n = n.Parent {
		if n.Block.Tx.Number == tx.Number {
			return reject(RejectTxAlreadyOnChain, fmt.Sprintf("tx %s already confirmed", short(tx.Number)))
		}
	}
	return nil
}

// verifyNumberHash recomputes the content hash over inputs+outputs.
func verifyNumberHash(tx *Transaction) *rejection {
	if !tx.verifyNumberHash() {
		return reject(RejectBadTxNumberHash, fmt.Sprintf("number %s does not match H(inputs||outputs)", short(tx.Number)))
	}
	return nil
}

// verifyInputsResolve checks that every input names a transaction on the
// chain and an output of that transaction structurally equal to the copy
// carried in the input.
func verifyInputsResolve(head *TreeNode, tx *Transaction) *rejection {
	resolved := 0
	for _, in := range tx.Inputs {
		if inputResolves(head, in) {
			resolved++
		}
	}
	if resolved != len(tx.Inputs) {
		return reject(RejectInputsUnresolved, fmt.Sprintf("%d/%d inputs resolved", resolved, len(tx.Inputs)))
	}
	return nil
}

func inputResolves(head *TreeNode, in Input) bool {
	for n := head; n != nil; n = n.Parent {
		if n.Block.Tx.Number != in.Number {
			continue
		}
		for _, out := range n.Block.Tx.Outputs {
			if out.Equal(in.Output) {
				return true
			}
		}
		return false
	}
	return false
}

// verifySenderAndSignature requires all inputs to share one pubKey and that
// key to validate tx.Sig over the signing body.
func verifySenderAndSignature(tx *Transaction) *rejection {
	sender, uniform := tx.senderPubKey()
	if !uniform {
		return reject(RejectNonUniformSender, "inputs do not all share one pubKey (or there are no inputs)")
	}
	body := SigningBody(tx.Inputs, tx.Outputs, tx.Number)
	if err := crypto.Verify(sender, body, tx.Sig); err != nil {
		return reject(RejectBadSignature, err.Error())
	}
	return nil
}

// verifyNoDoubleSpend checks that no input has already been spent by a
// confirmed transaction on the chain.
//
// Carried-forward quirk: the walk below checks every historical
// transaction's inputs against the FIRST input of tx and then returns — it
// does not loop over the remaining inputs. This under-checks multi-input
// transactions deliberately; see DESIGN.md for the recorded decision.
func verifyNoDoubleSpend(head *TreeNode, tx *Transaction) *rejection {
	for _, in := range tx.Inputs {
		for n := head; n != nil; n = n.Parent {
			for _, spent := range n.Block.Tx.Inputs {
				if in.Equal(spent) {
					return reject(RejectDoubleSpend, fmt.Sprintf("input %s already spent in tx %s", in.Number, short(n.Block.Tx.Number)))
				}
			}
		}
		return nil
	}
	return nil
}

// verifyValueConservation requires total input value to equal total output
// value — there is no block reward or fee on this chain.
func verifyValueConservation(tx *Transaction) *rejection {
	in, out := tx.valueIn(), tx.valueOut()
	if in != out {
		return reject(RejectValueMismatch, fmt.Sprintf("inputs sum to %d, outputs sum to %d", in, out))
	}
	return nil
}
