package script

import (
	"errors"
	"fmt"

	"xdao.co/nft/ledger"
	"xdao.co/nft/nftdata"
	"xdao.co/nft/tokenlogic"
)

// Code is a stable numeric error code forming the process exit
// contract. Values 1..4 are reserved for adapter faults surfaced
// unchanged from the query layer; validator codes start at 100.
//
// These values are intended to remain stable across versions. Callers
// should branch on Code rather than matching error strings.
type Code int

const (
	CodeIndexOutOfBound Code = 1
	CodeItemMissing     Code = 2
	CodeLengthNotEnough Code = 3
	CodeEncoding        Code = 4

	CodeInvalidArgsLen            Code = 100
	CodeInvalidInstanceID         Code = 101
	CodeInvalidInstanceIDLength   Code = 102
	CodeInvalidQuantity           Code = 103
	CodeInvalidQuantityLength     Code = 104
	CodeInvalidStructure          Code = 105
	CodeInvalidTokenLogicCellDep  Code = 106
	CodeInvalidTokenLogicLength   Code = 107
	CodeMissingTokenLogicCellDep  Code = 108
	CodeMissingTokenLogicFunction Code = 109
	CodeUnauthorizedOperation     Code = 110
	CodeUnexpectedCellMismatch    Code = 111
)

// Error is the validator's structured error type.
//
// Message is intended for humans; do not match on it. Use errors.As to
// extract *Error for structured handling, or CodeOf for the code alone.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func wrapError(code Code, msg string, cause error) error {
	if cause == nil {
		return newError(code, msg)
	}
	return &Error{Code: code, Message: msg, Cause: cause}
}

// CodeOf returns the stable code for a structured error, or 0 if err is
// nil or carries no code.
func CodeOf(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return 0
	}
	return e.Code
}

// ExitCode maps a Verify result onto the process contract: 0 for
// success, the stable Code for taxonomy failures, and the module's own
// status, verbatim, for token logic rejections.
//
// Unknown faults are non-recoverable and must not be coerced into the
// taxonomy; ExitCode panics on them so the hosting process aborts
// outright.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var status *tokenlogic.StatusError
	if errors.As(err, &status) {
		return int(status.Status)
	}
	var e *Error
	if errors.As(err, &e) {
		return int(e.Code)
	}
	panic(fmt.Sprintf("script: unexpected fault: %v", err))
}

// adaptErr folds adapter, codec, and dispatch sentinels into the coded
// taxonomy. Token logic rejections and unknown faults pass through
// unchanged.
func adaptErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ledger.ErrIndexOutOfBound):
		return wrapError(CodeIndexOutOfBound, "index out of bound", err)
	case errors.Is(err, ledger.ErrItemMissing):
		return wrapError(CodeItemMissing, "item missing", err)
	case errors.Is(err, ledger.ErrLengthNotEnough):
		return wrapError(CodeLengthNotEnough, "length not enough", err)
	case errors.Is(err, ledger.ErrEncoding):
		return wrapError(CodeEncoding, "malformed encoding", err)
	case errors.Is(err, nftdata.ErrInstanceIDLength):
		return wrapError(CodeInvalidInstanceIDLength, "invalid instance id length", err)
	case errors.Is(err, nftdata.ErrQuantityLength):
		return wrapError(CodeInvalidQuantityLength, "invalid quantity length", err)
	case errors.Is(err, nftdata.ErrTokenLogicLength):
		return wrapError(CodeInvalidTokenLogicLength, "invalid token logic length", err)
	case errors.Is(err, nftdata.ErrStructure):
		return wrapError(CodeInvalidStructure, "invalid payload structure", err)
	case errors.Is(err, tokenlogic.ErrMissingCellDep):
		return wrapError(CodeMissingTokenLogicCellDep, "missing token logic cell dep", err)
	case errors.Is(err, tokenlogic.ErrInvalidCellDep):
		return wrapError(CodeInvalidTokenLogicCellDep, "invalid token logic cell dep", err)
	case errors.Is(err, tokenlogic.ErrMissingFunction):
		return wrapError(CodeMissingTokenLogicFunction, "missing token logic function", err)
	}
	return err
}
