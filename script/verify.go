// Package script implements the NFT validator: one call decides whether
// a proposed transaction legally generates, transfers, updates, or
// burns the instance records guarded by this script.
package script

import (
	"bytes"
	"sort"

	"lukechampine.com/uint128"

	"xdao.co/nft/instanceid"
	"xdao.co/nft/ledger"
	"xdao.co/nft/nftdata"
	"xdao.co/nft/tokenlogic"
)

// Verify validates the transaction visible through q. It returns nil
// when every group output is a legal generation, transfer, or update
// and every referenced token logic module accepts the transition.
//
// Any error aborts validation immediately; there is no partial success.
// The first error in output-processing order is the one reported.
func Verify(q ledger.Query, eng tokenlogic.Engine) error {
	ownerMode, err := OwnerMode(q)
	if err != nil {
		return err
	}

	groupInputs, err := collectRecords(q.GroupInputData)
	if err != nil {
		return err
	}
	groupOutputs, err := collectRecords(q.GroupOutputData)
	if err != nil {
		return err
	}

	inputIDs := make(map[[nftdata.InstanceIDLen]byte]struct{}, len(groupInputs))
	for _, r := range groupInputs {
		inputIDs[r.InstanceID] = struct{}{}
	}

	scriptHash, err := q.ScriptHash()
	if err != nil {
		return adaptErr(err)
	}
	positions, err := q.OutputPositions(scriptHash)
	if err != nil {
		return adaptErr(err)
	}
	if len(groupOutputs) != len(positions) {
		return newError(CodeUnexpectedCellMismatch, "group output count does not match matching output positions")
	}

	seed, err := q.SeedOutPoint()
	if err != nil {
		return adaptErr(err)
	}

	validateSet := make(map[[tokenlogic.HashLen]byte]struct{})
	executeSet := make(map[[tokenlogic.HashLen]byte]struct{})

	for i, out := range groupOutputs {
		if _, known := inputIDs[out.InstanceID]; known {
			// Transfer, update, or the surviving side of a burn.
			inSum, outSum, err := partitionSums(out, groupInputs, groupOutputs, ownerMode)
			if err != nil {
				return err
			}
			if outSum.Cmp(inSum) > 0 {
				return newError(CodeInvalidQuantity, "output quantity exceeds input quantity")
			}
			if out.TokenLogic != nil && !tokenlogic.IsNull(*out.TokenLogic) {
				if ownerMode || countCustomChanges(out, groupInputs) == 0 {
					validateSet[*out.TokenLogic] = struct{}{}
				} else {
					executeSet[*out.TokenLogic] = struct{}{}
				}
			}
		} else {
			// Generation.
			if !ownerMode {
				return newError(CodeUnauthorizedOperation, "generation requires owner mode")
			}
			// The id commits to the output's ordinal position among the
			// validator's matching outputs, not its raw transaction
			// output index.
			expected := instanceid.Derive(seed, uint32(i))
			if out.InstanceID != expected {
				return newError(CodeInvalidInstanceID, "claimed instance id does not match derivation")
			}
			if out.TokenLogic != nil && !tokenlogic.IsNull(*out.TokenLogic) {
				// No prior state exists to compare against, so
				// execution is never applicable on generation.
				validateSet[*out.TokenLogic] = struct{}{}
			}
		}
	}

	for _, hash := range sortedHashes(validateSet) {
		if err := eng.EnsurePresent(hash); err != nil {
			return adaptErr(err)
		}
	}
	for _, hash := range sortedHashes(executeSet) {
		if err := eng.Invoke(hash); err != nil {
			return adaptErr(err)
		}
	}

	return nil
}

// collectRecords parses and structurally validates every payload of one
// group source, in order.
func collectRecords(list func() ([][]byte, error)) ([]*nftdata.Record, error) {
	datas, err := list()
	if err != nil {
		return nil, adaptErr(err)
	}
	records := make([]*nftdata.Record, 0, len(datas))
	for _, data := range datas {
		r, err := nftdata.Parse(data)
		if err != nil {
			return nil, adaptErr(err)
		}
		if err := r.Validate(); err != nil {
			return nil, adaptErr(err)
		}
		records = append(records, r)
	}
	return records, nil
}

// partitionSums sums resolved quantities of all group input and group
// output records sharing the partition key of r: the instance id alone
// in owner mode, the (instance id, token logic) pair otherwise.
//
// The sums use widening 128-bit accumulation; overflow is a hard
// validation failure, never a wrap.
func partitionSums(r *nftdata.Record, groupInputs, groupOutputs []*nftdata.Record, ownerMode bool) (in, out uint128.Uint128, err error) {
	key := r.Resolve()
	byLogic := !ownerMode

	in, err = partitionSum(key, byLogic, groupInputs)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	out, err = partitionSum(key, byLogic, groupOutputs)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	return in, out, nil
}

func partitionSum(key nftdata.Resolved, byLogic bool, records []*nftdata.Record) (uint128.Uint128, error) {
	sum := uint128.Zero
	for _, r := range records {
		resolved := r.Resolve()
		if resolved.InstanceID != key.InstanceID {
			continue
		}
		if byLogic && resolved.TokenLogic != key.TokenLogic {
			continue
		}
		next := sum.AddWrap(resolved.Quantity)
		if next.Cmp(sum) < 0 {
			return uint128.Zero, newError(CodeInvalidQuantity, "quantity sum overflows 128 bits")
		}
		sum = next
	}
	return sum, nil
}

// countCustomChanges counts group input records that share the resolved
// (instance id, token logic) pair of out but carry different custom
// bytes. A non-zero count under non-owner authority is what forces the
// logic hash into the execute set.
func countCustomChanges(out *nftdata.Record, groupInputs []*nftdata.Record) int {
	resolved := out.Resolve()
	changes := 0
	for _, in := range groupInputs {
		inResolved := in.Resolve()
		if inResolved.InstanceID != resolved.InstanceID || inResolved.TokenLogic != resolved.TokenLogic {
			continue
		}
		if !bytes.Equal(inResolved.Custom, resolved.Custom) {
			changes++
		}
	}
	return changes
}

// sortedHashes returns the set's hashes in byte order. Set iteration
// order carries no meaning; sorting keeps dispatch reproducible.
func sortedHashes(set map[[tokenlogic.HashLen]byte]struct{}) [][tokenlogic.HashLen]byte {
	out := make([][tokenlogic.HashLen]byte, 0, len(set))
	for hash := range set {
		out = append(out, hash)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
