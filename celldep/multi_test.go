package celldep_test

import (
	"bytes"
	"testing"

	"xdao.co/nft/celldep"
	"xdao.co/nft/celldep/memstore"
	"xdao.co/nft/datahash"
)

func TestMultiStore_FallbackOrder(t *testing.T) {
	primary := memstore.New()
	secondary := memstore.New()
	multi := celldep.MultiStore{Stores: []celldep.Store{primary, secondary}}

	b := []byte("only in secondary")
	id, err := secondary.Put(b)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := multi.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, b) {
		t.Fatalf("bytes mismatch")
	}
	if !multi.Has(id) {
		t.Fatalf("Has must consult every store")
	}
}

func TestMultiStore_PutWritesFirstOnly(t *testing.T) {
	primary := memstore.New()
	secondary := memstore.New()
	multi := celldep.MultiStore{Stores: []celldep.Store{primary, secondary}}

	b := []byte("write policy")
	id, err := multi.Put(b)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !primary.Has(id) {
		t.Fatalf("primary must hold the object")
	}
	if secondary.Has(id) {
		t.Fatalf("secondary must not receive writes")
	}
}

func TestMultiStore_NotFound(t *testing.T) {
	multi := celldep.MultiStore{Stores: []celldep.Store{memstore.New()}}
	id, err := datahash.CodeCID([]byte("absent"))
	if err != nil {
		t.Fatalf("CodeCID: %v", err)
	}
	if _, err := multi.Get(id); !celldep.IsNotFound(err) {
		t.Fatalf("got %v want ErrNotFound", err)
	}
}
