// Package tokenlogic defines the dispatch contract for content-addressed
// token logic modules.
//
// Token logic is the validator's sole extension point: custom governance
// and business rules are referenced by a 32-byte code hash carried in
// the record payload, resolved at runtime, and consulted in one of two
// modes. Validate mode only confirms the module and its entry point
// exist; execute mode calls the entry point and lets it accept or
// reject the transition.
package tokenlogic

import (
	"errors"
	"fmt"
)

// EntryPoint is the exported function name every token logic module
// must provide.
const EntryPoint = "token_logic"

// HashLen is the number of bytes in a token logic code hash.
const HashLen = 32

// NullHash is the all-zero sentinel meaning "no custom logic attached".
// It is skipped by dispatch without resolution.
var NullHash [HashLen]byte

// IsNull reports whether hash is the null sentinel.
func IsNull(hash [HashLen]byte) bool {
	return hash == NullHash
}

// Engine resolves and consults token logic modules. Implementations are
// strategy objects obtained by the host; the validator never special
// cases individual hashes.
type Engine interface {
	// EnsurePresent resolves the module for codeHash and confirms the
	// entry point exists without invoking it. The null hash is a no-op.
	EnsurePresent(codeHash [HashLen]byte) error

	// Invoke resolves the module and calls its entry point with
	// codeHash as the argument. A nil return means the module accepted
	// the transition; a rejection is returned as a *StatusError.
	Invoke(codeHash [HashLen]byte) error
}

// Resolution error sentinels. The validator maps these onto its stable
// exit codes.
var (
	// ErrMissingCellDep reports that no code cell carries the module.
	ErrMissingCellDep = errors.New("tokenlogic: missing token logic cell dep")

	// ErrInvalidCellDep reports that the code cell exists but does not
	// hold a loadable module.
	ErrInvalidCellDep = errors.New("tokenlogic: invalid token logic cell dep")

	// ErrMissingFunction reports that the module lacks the entry point.
	ErrMissingFunction = errors.New("tokenlogic: missing token logic function")
)

// StatusError carries a non-zero status returned by a token logic entry
// point. The status is opaque to the validator and is propagated to the
// process boundary verbatim, never remapped.
type StatusError struct {
	Hash   [HashLen]byte
	Status int32
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tokenlogic: module rejected with status %d", e.Status)
}
