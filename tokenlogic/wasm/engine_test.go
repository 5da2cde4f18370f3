package wasm

import (
	"errors"
	"testing"

	"xdao.co/nft/celldep/memstore"
	"xdao.co/nft/datahash"
	"xdao.co/nft/tokenlogic"
)

func TestEngine_NullHashIsNoOp(t *testing.T) {
	eng := New(memstore.New())
	if err := eng.EnsurePresent(tokenlogic.NullHash); err != nil {
		t.Fatalf("EnsurePresent(null): %v", err)
	}
	if err := eng.Invoke(tokenlogic.NullHash); err != nil {
		t.Fatalf("Invoke(null): %v", err)
	}
}

func TestEngine_MissingModule(t *testing.T) {
	eng := New(memstore.New())
	hash := datahash.Sum256([]byte("not stored anywhere"))

	if err := eng.EnsurePresent(hash); !errors.Is(err, tokenlogic.ErrMissingCellDep) {
		t.Fatalf("EnsurePresent: got %v want ErrMissingCellDep", err)
	}
	if err := eng.Invoke(hash); !errors.Is(err, tokenlogic.ErrMissingCellDep) {
		t.Fatalf("Invoke: got %v want ErrMissingCellDep", err)
	}
}

func TestEngine_InvalidModuleBytes(t *testing.T) {
	store := memstore.New()
	// A code cell that is not a WASM module at all.
	bad := []byte("definitely not wasm")
	if _, err := store.Put(bad); err != nil {
		t.Fatalf("Put: %v", err)
	}

	eng := New(store)
	if err := eng.EnsurePresent(datahash.Sum256(bad)); !errors.Is(err, tokenlogic.ErrInvalidCellDep) {
		t.Fatalf("EnsurePresent: got %v want ErrInvalidCellDep", err)
	}
}
