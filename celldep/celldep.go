// Package celldep provides content-addressed storage for code cells:
// the immutable byte blobs holding token logic modules, keyed by the
// chain hash of their contents.
package celldep

import "github.com/ipfs/go-cid"

// Store is a minimal content-addressed code-cell store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - Keys are datahash.CodeCID values: CIDv1 wrapping the chain's
//   blake2b-256 content hash, bijective with on-chain code hashes.
// - Get MUST verify the returned bytes against the requested key and
//   MUST return ErrNotFound when the key is absent.
type Store interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
