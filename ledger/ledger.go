// Package ledger defines the query contract the validator uses to read
// the transaction under validation.
package ledger

import "errors"

// OutPoint identifies a consumed transaction output: a 32-byte
// transaction hash plus the output index within that transaction.
type OutPoint struct {
	TxHash [32]byte
	Index  uint32
}

// Query is the read-only view of one transaction, scoped to the
// currently executing validator script.
//
// Contract:
// - All listings MUST be in transaction order and stable across calls.
// - "Group" sources contain only records whose verification script
//   matches the executing validator.
// - Implementations MUST NOT mutate the transaction between calls; a
//   Query is a snapshot of one validation invocation.
// - Failures use the sentinel errors below; anything else is treated as
//   a non-recoverable adapter fault.
type Query interface {
	// GroupInputData returns the payload bytes of every group input.
	GroupInputData() ([][]byte, error)

	// GroupOutputData returns the payload bytes of every group output.
	GroupOutputData() ([][]byte, error)

	// OutputPositions returns the transaction-output positions whose
	// verification script hash equals scriptHash, in output order.
	OutputPositions(scriptHash [32]byte) ([]uint32, error)

	// InputLockHashes returns the authorization (lock script) hash of
	// every transaction input, in input order.
	InputLockHashes() ([][32]byte, error)

	// SeedOutPoint returns the out point consumed by the first input.
	SeedOutPoint() (OutPoint, error)

	// ScriptArgs returns the invocation arguments of the executing
	// validator script.
	ScriptArgs() ([]byte, error)

	// ScriptHash returns the hash of the executing validator script.
	ScriptHash() ([32]byte, error)
}

// Adapter fault sentinels, surfaced unchanged through the validator's
// exit-code taxonomy.
var (
	ErrIndexOutOfBound = errors.New("ledger: index out of bound")
	ErrItemMissing     = errors.New("ledger: item missing")
	ErrLengthNotEnough = errors.New("ledger: length not enough")
	ErrEncoding        = errors.New("ledger: encoding")
)
