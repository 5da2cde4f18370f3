// Package instanceid derives deterministic NFT instance identities.
package instanceid

import (
	"encoding/binary"

	"xdao.co/nft/datahash"
	"xdao.co/nft/ledger"
)

// Derive computes the instance id for a newly generated NFT.
//
// The id is the chain hash of the seed out point (transaction hash,
// little-endian index) followed by the little-endian position of the
// output among the validator's matching outputs. Derive is pure: the
// same inputs always produce the same id, and it is used both to mint
// ids and to re-verify a claimed id.
func Derive(seed ledger.OutPoint, position uint32) [32]byte {
	h := datahash.New256()
	_, _ = h.Write(seed.TxHash[:])

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], seed.Index)
	_, _ = h.Write(buf[:])

	binary.LittleEndian.PutUint32(buf[:], position)
	_, _ = h.Write(buf[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
