// Package datahash implements the chain's content hashing and the CID
// interop identifiers derived from it.
package datahash

import (
	"errors"
	"hash"

	"github.com/ipfs/go-cid"
	"github.com/minio/blake2b-simd"
	"github.com/multiformats/go-multihash"
)

// Len is the number of bytes in a content hash.
const Len = 32

// Personalization is the fixed 16-byte domain tag applied to every
// blake2b computation on the chain.
const Personalization = "ckb-default-hash"

// New256 returns a streaming blake2b-256 hasher under the chain's
// personalization tag.
func New256() hash.Hash {
	h, err := blake2b.New(&blake2b.Config{
		Size:   Len,
		Person: []byte(Personalization),
	})
	if err != nil {
		// The config is static and valid; blake2b.New only fails on
		// malformed configs.
		panic("datahash: blake2b config rejected: " + err.Error())
	}
	return h
}

// Sum256 returns the personalized blake2b-256 digest of data.
func Sum256(data []byte) [Len]byte {
	h := New256()
	_, _ = h.Write(data)
	var out [Len]byte
	copy(out[:], h.Sum(nil))
	return out
}

// CodeCID returns the CID under which code-cell bytes are stored.
//
// The digest is the chain's personalized blake2b-256 wrapped as a
// blake2b-256 multihash in a CIDv1 raw CID, so store keys remain
// bijective with on-chain code hashes.
func CodeCID(data []byte) (cid.Cid, error) {
	sum := Sum256(data)
	return CIDFromHash(sum)
}

// CIDFromHash wraps an existing 32-byte content hash as a CID.
func CIDFromHash(sum [Len]byte) (cid.Cid, error) {
	mh, err := multihash.Encode(sum[:], multihash.BLAKE2B_MIN+31)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}

// HashFromCID recovers the 32-byte content hash from a CID produced by
// CodeCID or CIDFromHash.
func HashFromCID(id cid.Cid) ([Len]byte, error) {
	var out [Len]byte
	if !id.Defined() {
		return out, errors.New("datahash: undefined cid")
	}
	dec, err := multihash.Decode(id.Hash())
	if err != nil {
		return out, err
	}
	if dec.Code != multihash.BLAKE2B_MIN+31 || dec.Length != Len {
		return out, errors.New("datahash: cid does not carry a blake2b-256 digest")
	}
	copy(out[:], dec.Digest)
	return out, nil
}
