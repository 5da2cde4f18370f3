// Package wasm executes token logic modules compiled to WebAssembly.
//
// Modules are resolved from a code-cell store by their chain code hash.
// The entry point ABI is:
//
//	token_logic(ptr uint32, len uint32) -> int32
//
// The host writes the 32-byte code hash at offset 0 of the module's
// exported "memory" before the call. A zero return accepts the
// transition; any other value rejects it.
package wasm

import (
	"fmt"

	"github.com/wasmerio/wasmer-go/wasmer"

	"xdao.co/nft/celldep"
	"xdao.co/nft/datahash"
	"xdao.co/nft/tokenlogic"
)

// Engine resolves and runs WASM token logic modules.
type Engine struct {
	store celldep.Store
}

var _ tokenlogic.Engine = (*Engine)(nil)

// New returns an engine backed by store.
func New(store celldep.Store) *Engine {
	return &Engine{store: store}
}

// EnsurePresent resolves the module and confirms the entry point exists
// without invoking it. The null hash is a no-op.
func (e *Engine) EnsurePresent(codeHash [tokenlogic.HashLen]byte) error {
	if tokenlogic.IsNull(codeHash) {
		return nil
	}
	instance, err := e.instantiate(codeHash)
	if err != nil {
		return err
	}
	defer instance.Close()

	if _, err := instance.Exports.GetFunction(tokenlogic.EntryPoint); err != nil {
		return tokenlogic.ErrMissingFunction
	}
	return nil
}

// Invoke resolves the module and calls the entry point with codeHash as
// its argument.
func (e *Engine) Invoke(codeHash [tokenlogic.HashLen]byte) error {
	if tokenlogic.IsNull(codeHash) {
		return nil
	}
	instance, err := e.instantiate(codeHash)
	if err != nil {
		return err
	}
	defer instance.Close()

	entry, err := instance.Exports.GetFunction(tokenlogic.EntryPoint)
	if err != nil {
		return tokenlogic.ErrMissingFunction
	}
	memory, err := instance.Exports.GetMemory("memory")
	if err != nil {
		return tokenlogic.ErrInvalidCellDep
	}
	data := memory.Data()
	if len(data) < tokenlogic.HashLen {
		return tokenlogic.ErrInvalidCellDep
	}
	copy(data[:tokenlogic.HashLen], codeHash[:])

	result, err := entry(int32(0), int32(tokenlogic.HashLen))
	if err != nil {
		// A trap is a non-recoverable fault, not a status rejection.
		return fmt.Errorf("wasm: %s trapped: %w", tokenlogic.EntryPoint, err)
	}
	status, err := statusOf(result)
	if err != nil {
		return err
	}
	if status != 0 {
		return &tokenlogic.StatusError{Hash: codeHash, Status: status}
	}
	return nil
}

func (e *Engine) instantiate(codeHash [tokenlogic.HashLen]byte) (*wasmer.Instance, error) {
	id, err := datahash.CIDFromHash(codeHash)
	if err != nil {
		return nil, err
	}
	moduleBytes, err := e.store.Get(id)
	if err != nil {
		if celldep.IsNotFound(err) {
			return nil, tokenlogic.ErrMissingCellDep
		}
		return nil, err
	}

	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	module, err := wasmer.NewModule(store, moduleBytes)
	if err != nil {
		return nil, tokenlogic.ErrInvalidCellDep
	}
	instance, err := wasmer.NewInstance(module, wasmer.NewImportObject())
	if err != nil {
		return nil, tokenlogic.ErrInvalidCellDep
	}
	return instance, nil
}

func statusOf(result interface{}) (int32, error) {
	switch v := result.(type) {
	case int32:
		return v, nil
	case int64:
		return int32(v), nil
	default:
		return 0, fmt.Errorf("wasm: %s returned non-integer result %T", tokenlogic.EntryPoint, result)
	}
}
