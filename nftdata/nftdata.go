// Package nftdata implements the binary codec for NFT record payloads.
//
// The payload is a fixed-layout concatenation with progressive optional
// fields: every optional field may be present only if all fields before
// it are present.
//
//	bytes[0:32]   instance id  (mandatory)
//	bytes[32:48]  quantity, little-endian u128
//	bytes[48:80]  token logic hash
//	bytes[80:]    custom, opaque
package nftdata

import (
	"errors"

	"lukechampine.com/uint128"
)

const (
	// InstanceIDLen is the number of bytes in the instance id field.
	InstanceIDLen = 32
	// QuantityLen is the number of bytes in the quantity field.
	QuantityLen = 16
	// TokenLogicLen is the number of bytes in the token logic field.
	TokenLogicLen = 32
)

// Structural error sentinels. The validator maps these onto its stable
// exit codes.
var (
	ErrInstanceIDLength = errors.New("nftdata: invalid instance id length")
	ErrQuantityLength   = errors.New("nftdata: invalid quantity length")
	ErrTokenLogicLength = errors.New("nftdata: invalid token logic length")
	ErrStructure        = errors.New("nftdata: invalid structure")
)

// NullTokenLogic is the all-zero sentinel meaning "no custom logic
// attached". It is never dispatched.
var NullTokenLogic [TokenLogicLen]byte

// Record is a parsed NFT payload. Optional fields are nil when absent
// from the encoding.
type Record struct {
	InstanceID [InstanceIDLen]byte
	Quantity   *uint128.Uint128
	TokenLogic *[TokenLogicLen]byte
	Custom     []byte
}

// Resolved is a Record with defaults applied: quantity 1, null token
// logic, empty custom. Resolved values are used for comparisons and
// summation only; they are never serialized.
type Resolved struct {
	InstanceID [InstanceIDLen]byte
	Quantity   uint128.Uint128
	TokenLogic [TokenLogicLen]byte
	Custom     []byte
}

// Resolve applies field defaults to r.
func (r *Record) Resolve() Resolved {
	out := Resolved{
		InstanceID: r.InstanceID,
		Quantity:   uint128.From64(1),
	}
	if r.Quantity != nil {
		out.Quantity = *r.Quantity
	}
	if r.TokenLogic != nil {
		out.TokenLogic = *r.TokenLogic
	}
	if r.Custom != nil {
		out.Custom = r.Custom
	}
	return out
}

// Parse decodes a payload. It enforces field lengths but not the
// progressive-disclosure rule; call Validate for that.
func Parse(data []byte) (*Record, error) {
	if len(data) < InstanceIDLen {
		return nil, ErrInstanceIDLength
	}
	var r Record
	copy(r.InstanceID[:], data[:InstanceIDLen])

	if len(data) > InstanceIDLen {
		if len(data) < InstanceIDLen+QuantityLen {
			return nil, ErrQuantityLength
		}
		q := uint128.FromBytes(data[InstanceIDLen : InstanceIDLen+QuantityLen])
		r.Quantity = &q
	}

	if len(data) > InstanceIDLen+QuantityLen {
		if len(data) < InstanceIDLen+QuantityLen+TokenLogicLen {
			return nil, ErrTokenLogicLength
		}
		var tl [TokenLogicLen]byte
		copy(tl[:], data[InstanceIDLen+QuantityLen:InstanceIDLen+QuantityLen+TokenLogicLen])
		r.TokenLogic = &tl
	}

	if len(data) > InstanceIDLen+QuantityLen+TokenLogicLen {
		custom := make([]byte, len(data)-InstanceIDLen-QuantityLen-TokenLogicLen)
		copy(custom, data[InstanceIDLen+QuantityLen+TokenLogicLen:])
		r.Custom = custom
	}

	return &r, nil
}

// Validate enforces the progressive-disclosure rule: a field may be
// present only if every field preceding it is present.
func (r *Record) Validate() error {
	if r.TokenLogic != nil && r.Quantity == nil {
		return ErrStructure
	}
	if r.Custom != nil && (r.Quantity == nil || r.TokenLogic == nil) {
		return ErrStructure
	}
	return nil
}

// Serialize is the exact inverse of Parse: round-trips are lossless for
// every record Parse accepts.
func (r *Record) Serialize() []byte {
	out := make([]byte, 0, InstanceIDLen+QuantityLen+TokenLogicLen+len(r.Custom))
	out = append(out, r.InstanceID[:]...)
	if r.Quantity != nil {
		var buf [QuantityLen]byte
		r.Quantity.PutBytes(buf[:])
		out = append(out, buf[:]...)
	}
	if r.TokenLogic != nil {
		out = append(out, r.TokenLogic[:]...)
	}
	if r.Custom != nil {
		out = append(out, r.Custom...)
	}
	return out
}
