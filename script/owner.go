package script

import "xdao.co/nft/ledger"

// ArgsLen is the minimum number of bytes the validator's invocation
// arguments must carry: the 32-byte governance authorization hash.
const ArgsLen = 32

// OwnerMode reports whether elevated authority is present: true iff the
// first 32 bytes of the validator's own arguments equal the
// authorization hash of at least one transaction input.
func OwnerMode(q ledger.Query) (bool, error) {
	args, err := q.ScriptArgs()
	if err != nil {
		return false, adaptErr(err)
	}
	if len(args) < ArgsLen {
		return false, newError(CodeInvalidArgsLen, "script args shorter than 32 bytes")
	}

	var governance [32]byte
	copy(governance[:], args[:ArgsLen])

	lockHashes, err := q.InputLockHashes()
	if err != nil {
		return false, adaptErr(err)
	}
	for _, lockHash := range lockHashes {
		if lockHash == governance {
			return true, nil
		}
	}
	return false, nil
}
