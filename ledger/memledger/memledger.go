// Package memledger provides an in-memory transaction snapshot
// implementing ledger.Query. It backs the validator's tests and serves
// as the reference adapter implementation.
package memledger

import "xdao.co/nft/ledger"

// Input is one consumed transaction input.
type Input struct {
	PreviousOutput ledger.OutPoint
	LockHash       [32]byte
	TypeHash       *[32]byte
	Data           []byte
}

// Output is one produced transaction output.
type Output struct {
	LockHash [32]byte
	TypeHash *[32]byte
	Data     []byte
}

// Tx is a fixed snapshot of one transaction under validation.
type Tx struct {
	Inputs  []Input
	Outputs []Output
}

// NewTx returns an empty transaction.
func NewTx() *Tx {
	return &Tx{}
}

// AddInput appends an input. typeHash may be nil for untyped inputs.
func (t *Tx) AddInput(prev ledger.OutPoint, lockHash [32]byte, typeHash *[32]byte, data []byte) *Tx {
	t.Inputs = append(t.Inputs, Input{PreviousOutput: prev, LockHash: lockHash, TypeHash: typeHash, Data: data})
	return t
}

// AddOutput appends an output. typeHash may be nil for untyped outputs.
func (t *Tx) AddOutput(lockHash [32]byte, typeHash *[32]byte, data []byte) *Tx {
	t.Outputs = append(t.Outputs, Output{LockHash: lockHash, TypeHash: typeHash, Data: data})
	return t
}

// Query binds a transaction to one executing validator script, giving
// the scoped view ledger.Query requires.
type Query struct {
	tx         *Tx
	scriptHash [32]byte
	args       []byte
}

var _ ledger.Query = (*Query)(nil)

// NewQuery returns the view of tx as seen by the validator script with
// the given hash and invocation args.
func NewQuery(tx *Tx, scriptHash [32]byte, args []byte) *Query {
	return &Query{tx: tx, scriptHash: scriptHash, args: args}
}

func (q *Query) GroupInputData() ([][]byte, error) {
	var out [][]byte
	for _, in := range q.tx.Inputs {
		if in.TypeHash != nil && *in.TypeHash == q.scriptHash {
			out = append(out, in.Data)
		}
	}
	return out, nil
}

func (q *Query) GroupOutputData() ([][]byte, error) {
	var out [][]byte
	for _, o := range q.tx.Outputs {
		if o.TypeHash != nil && *o.TypeHash == q.scriptHash {
			out = append(out, o.Data)
		}
	}
	return out, nil
}

func (q *Query) OutputPositions(scriptHash [32]byte) ([]uint32, error) {
	var out []uint32
	for i, o := range q.tx.Outputs {
		if o.TypeHash != nil && *o.TypeHash == scriptHash {
			out = append(out, uint32(i))
		}
	}
	return out, nil
}

func (q *Query) InputLockHashes() ([][32]byte, error) {
	out := make([][32]byte, 0, len(q.tx.Inputs))
	for _, in := range q.tx.Inputs {
		out = append(out, in.LockHash)
	}
	return out, nil
}

func (q *Query) SeedOutPoint() (ledger.OutPoint, error) {
	if len(q.tx.Inputs) == 0 {
		return ledger.OutPoint{}, ledger.ErrIndexOutOfBound
	}
	return q.tx.Inputs[0].PreviousOutput, nil
}

func (q *Query) ScriptArgs() ([]byte, error) {
	return q.args, nil
}

func (q *Query) ScriptHash() ([32]byte, error) {
	return q.scriptHash, nil
}
