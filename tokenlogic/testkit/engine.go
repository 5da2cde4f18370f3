// Package testkit provides a programmable token logic engine for
// classifier tests.
package testkit

import "xdao.co/nft/tokenlogic"

// Engine is an in-memory tokenlogic.Engine that records every dispatch
// and fails on demand.
type Engine struct {
	// Missing marks hashes whose code cell cannot be resolved.
	Missing map[[32]byte]bool

	// NoEntry marks hashes whose module lacks the entry point.
	NoEntry map[[32]byte]bool

	// Statuses gives the entry-point return status per hash; absent
	// hashes return 0 (accept).
	Statuses map[[32]byte]int32

	// Validated and Invoked record dispatches in order.
	Validated [][32]byte
	Invoked   [][32]byte
}

var _ tokenlogic.Engine = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{
		Missing:  make(map[[32]byte]bool),
		NoEntry:  make(map[[32]byte]bool),
		Statuses: make(map[[32]byte]int32),
	}
}

func (e *Engine) EnsurePresent(codeHash [32]byte) error {
	if tokenlogic.IsNull(codeHash) {
		return nil
	}
	if err := e.resolve(codeHash); err != nil {
		return err
	}
	e.Validated = append(e.Validated, codeHash)
	return nil
}

func (e *Engine) Invoke(codeHash [32]byte) error {
	if tokenlogic.IsNull(codeHash) {
		return nil
	}
	if err := e.resolve(codeHash); err != nil {
		return err
	}
	e.Invoked = append(e.Invoked, codeHash)
	if status := e.Statuses[codeHash]; status != 0 {
		return &tokenlogic.StatusError{Hash: codeHash, Status: status}
	}
	return nil
}

func (e *Engine) resolve(codeHash [32]byte) error {
	if e.Missing[codeHash] {
		return tokenlogic.ErrMissingCellDep
	}
	if e.NoEntry[codeHash] {
		return tokenlogic.ErrMissingFunction
	}
	return nil
}
