package core

// RejectKind labels why a transaction or block was rejected. These mirror
// the error taxonomy every honest node reports through its log sink before
// collapsing the failure to a boolean at the package boundary.
type RejectKind string

const (
	RejectTxAlreadyOnChain RejectKind = "TxAlreadyOnChain"
	RejectBadTxNumberHash  RejectKind = "BadTxNumberHash"
	RejectInputsUnresolved RejectKind = "InputsUnresolved"
	RejectNonUniformSender RejectKind = "NonUniformSender"
	RejectBadSignature     RejectKind = "BadSignature"
	RejectDoubleSpend      RejectKind = "DoubleSpend"
	RejectValueMismatch    RejectKind = "ValueMismatch"

	RejectBadPoW      RejectKind = "BadPoW"
	RejectBadPrevHash RejectKind = "BadPrevHash"
	RejectOrphanBlock RejectKind = "OrphanBlock"
)

// rejection carries a kind and a human-readable detail. It never crosses a
// package boundary as an error value — verifyTx/verifyBlock log it and
// return false, per the source's collapse-to-bool policy.
type rejection struct {
	kind   RejectKind
	detail string
}

func (r *rejection) Error() string { return string(r.kind) + ": " + r.detail }

func reject(kind RejectKind, detail string) *rejection {
	return &rejection{kind: kind, detail: detail}
}
