// Package memstore provides an in-memory code-cell store for tests and
// single-process hosts.
package memstore

import (
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/nft/celldep"
	"xdao.co/nft/datahash"
)

// Store is a map-backed celldep.Store. The zero value is not usable;
// call New.
type Store struct {
	mu      sync.RWMutex
	objects map[cid.Cid][]byte
}

var _ celldep.Store = (*Store)(nil)

func New() *Store {
	return &Store{objects: make(map[cid.Cid][]byte)}
}

func (s *Store) Put(bytes []byte) (cid.Cid, error) {
	id, err := datahash.CodeCID(bytes)
	if err != nil {
		return cid.Undef, err
	}
	stored := make([]byte, len(bytes))
	copy(stored, bytes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[id] = stored
	return id, nil
}

func (s *Store) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, celldep.ErrInvalidCID
	}
	s.mu.RLock()
	b, ok := s.objects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, celldep.ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (s *Store) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[id]
	return ok
}
