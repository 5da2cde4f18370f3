package script

import (
	"errors"
	"testing"

	"lukechampine.com/uint128"

	"xdao.co/nft/instanceid"
	"xdao.co/nft/ledger"
	"xdao.co/nft/ledger/memledger"
	"xdao.co/nft/nftdata"
	"xdao.co/nft/tokenlogic"
	"xdao.co/nft/tokenlogic/testkit"
)

var (
	governance = h32(0xa0) // authorization hash carried in script args
	otherLock  = h32(0xb0)
	nftHash    = h32(0xc0) // the validator's own script hash
)

func h32(b byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = b
	}
	return out
}

func qty(v uint64) *uint128.Uint128 {
	q := uint128.From64(v)
	return &q
}

func qtyMax() *uint128.Uint128 {
	q := uint128.Max
	return &q
}

func data(r nftdata.Record) []byte {
	return r.Serialize()
}

func wantCode(t *testing.T, err error, code Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected code %d, got nil", code)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected structured *script.Error, got %T: %v", err, err)
	}
	if e.Code != code {
		t.Fatalf("expected code %d, got %d (%v)", code, e.Code, err)
	}
}

func TestOwnerMode(t *testing.T) {
	tx := memledger.NewTx().
		AddInput(ledger.OutPoint{TxHash: h32(0x01)}, governance, nil, nil)

	owner, err := OwnerMode(memledger.NewQuery(tx, nftHash, governance[:]))
	if err != nil {
		t.Fatalf("OwnerMode: %v", err)
	}
	if !owner {
		t.Fatalf("expected owner mode with matching input lock")
	}

	owner, err = OwnerMode(memledger.NewQuery(tx, nftHash, otherLock[:]))
	if err != nil {
		t.Fatalf("OwnerMode: %v", err)
	}
	if owner {
		t.Fatalf("expected non-owner mode without matching input lock")
	}
}

func TestOwnerMode_ShortArgs(t *testing.T) {
	tx := memledger.NewTx().
		AddInput(ledger.OutPoint{TxHash: h32(0x01)}, governance, nil, nil)

	_, err := OwnerMode(memledger.NewQuery(tx, nftHash, governance[:31]))
	wantCode(t, err, CodeInvalidArgsLen)
}

// Scenario: generation with authority present.
func TestVerify_GenerateAuthorized(t *testing.T) {
	seed := ledger.OutPoint{TxHash: h32(0x51), Index: 1}
	id := instanceid.Derive(seed, 0)

	tx := memledger.NewTx().
		AddInput(seed, governance, nil, nil).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: id}))

	eng := testkit.NewEngine()
	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), eng); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// Scenario: generation without authority.
func TestVerify_GenerateUnauthorized(t *testing.T) {
	seed := ledger.OutPoint{TxHash: h32(0x51), Index: 1}
	id := instanceid.Derive(seed, 0)

	tx := memledger.NewTx().
		AddInput(seed, otherLock, nil, nil).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: id}))

	err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeUnauthorizedOperation)
}

func TestVerify_GenerateWrongInstanceID(t *testing.T) {
	seed := ledger.OutPoint{TxHash: h32(0x51), Index: 1}

	tx := memledger.NewTx().
		AddInput(seed, governance, nil, nil).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: h32(0x99)}))

	err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeInvalidInstanceID)
}

// The derivation commits to the output's ordinal among matching
// outputs, so an unrelated output ahead of the NFT must not shift the
// expected id.
func TestVerify_GenerateOrdinalPosition(t *testing.T) {
	seed := ledger.OutPoint{TxHash: h32(0x51), Index: 1}
	id := instanceid.Derive(seed, 0)

	tx := memledger.NewTx().
		AddInput(seed, governance, nil, nil).
		AddOutput(otherLock, nil, nil). // raw output index 0, not ours
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: id}))

	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerify_GenerateMany(t *testing.T) {
	seed := ledger.OutPoint{TxHash: h32(0x51), Index: 0}

	tx := memledger.NewTx().AddInput(seed, governance, nil, nil)
	for i := uint32(0); i < 3; i++ {
		id := instanceid.Derive(seed, i)
		tx.AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: id}))
	}

	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// Scenario: transfer with conserved quantities.
func TestVerify_TransferConserved(t *testing.T) {
	x := h32(0x77)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	cases := []struct {
		second uint64
		code   Code // 0 means accept
	}{
		{1, 0}, // sum 9 <= 10
		{2, 0}, // sum 10 == 10
		{3, CodeInvalidQuantity}, // sum 11 > 10
	}
	for _, tc := range cases {
		tx := memledger.NewTx().
			AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10)})).
			AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(8)})).
			AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(tc.second)}))

		err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
		if tc.code == 0 {
			if err != nil {
				t.Fatalf("second=%d: Verify: %v", tc.second, err)
			}
			continue
		}
		wantCode(t, err, tc.code)
	}
}

// Scenario: burn. An input with no surviving output needs no check
// beyond conservation, which trivially holds.
func TestVerify_Burn(t *testing.T) {
	x := h32(0x77)
	tx := memledger.NewTx().
		AddInput(ledger.OutPoint{TxHash: h32(0x51)}, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10)}))

	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerify_QuantityDefaultsToOne(t *testing.T) {
	x := h32(0x77)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	// One input without a quantity field holds exactly 1.
	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(2)}))

	err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeInvalidQuantity)
}

func TestVerify_SumOverflowRejected(t *testing.T) {
	x := h32(0x77)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qtyMax()})).
		AddInput(ledger.OutPoint{TxHash: h32(0x52)}, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(2)})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(1)}))

	err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeInvalidQuantity)
}

// Owner mode partitions conservation by instance id alone; without
// authority the partition splits per token logic hash.
func TestVerify_PartitionKeyDependsOnAuthority(t *testing.T) {
	x := h32(0x77)
	h1 := h32(0xe1)
	h2 := h32(0xe2)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	build := func(lock [32]byte) *memledger.Tx {
		return memledger.NewTx().
			AddInput(seed, lock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(5), TokenLogic: &h1})).
			AddInput(ledger.OutPoint{TxHash: h32(0x52)}, lock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(5), TokenLogic: &h2})).
			AddOutput(lock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10), TokenLogic: &h1}))
	}

	// Owner mode: 10 out <= 10 in across the whole instance.
	eng := testkit.NewEngine()
	if err := Verify(memledger.NewQuery(build(governance), nftHash, governance[:]), eng); err != nil {
		t.Fatalf("owner mode: %v", err)
	}

	// Non-owner: the h1 partition only holds 5.
	err := Verify(memledger.NewQuery(build(otherLock), nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeInvalidQuantity)
}

// Scenario: unchanged custom bytes keep the logic hash on the
// validate-only path.
func TestVerify_LogicValidatePath(t *testing.T) {
	x := h32(0x77)
	h := h32(0xe5)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10), TokenLogic: &h, Custom: []byte("A")})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(9), TokenLogic: &h, Custom: []byte("A")}))

	eng := testkit.NewEngine()
	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), eng); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(eng.Validated) != 1 || eng.Validated[0] != h {
		t.Fatalf("expected %x validated once, got %x", h, eng.Validated)
	}
	if len(eng.Invoked) != 0 {
		t.Fatalf("expected no executions, got %x", eng.Invoked)
	}
}

// Scenario: changed custom bytes force execution, and a non-zero module
// status aborts with that status.
func TestVerify_LogicExecutePath(t *testing.T) {
	x := h32(0x77)
	h := h32(0xe5)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	build := func() *memledger.Tx {
		return memledger.NewTx().
			AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10), TokenLogic: &h, Custom: []byte("A")})).
			AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(9), TokenLogic: &h, Custom: []byte("B")}))
	}

	eng := testkit.NewEngine()
	if err := Verify(memledger.NewQuery(build(), nftHash, governance[:]), eng); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(eng.Invoked) != 1 || eng.Invoked[0] != h {
		t.Fatalf("expected %x executed once, got %x", h, eng.Invoked)
	}
	if len(eng.Validated) != 0 {
		t.Fatalf("expected no validate-only dispatch, got %x", eng.Validated)
	}

	// Module rejection propagates verbatim.
	eng = testkit.NewEngine()
	eng.Statuses[h] = 42
	err := Verify(memledger.NewQuery(build(), nftHash, governance[:]), eng)
	var status *tokenlogic.StatusError
	if !errors.As(err, &status) {
		t.Fatalf("expected *tokenlogic.StatusError, got %v", err)
	}
	if status.Status != 42 {
		t.Fatalf("status not propagated verbatim: got %d", status.Status)
	}
	if ExitCode(err) != 42 {
		t.Fatalf("ExitCode must surface the module status")
	}
}

// Owner mode keeps a changed custom field on the validate-only path.
func TestVerify_OwnerModeSkipsExecution(t *testing.T) {
	x := h32(0x77)
	h := h32(0xe5)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, governance, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10), TokenLogic: &h, Custom: []byte("A")})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(9), TokenLogic: &h, Custom: []byte("B")}))

	eng := testkit.NewEngine()
	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), eng); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(eng.Invoked) != 0 {
		t.Fatalf("owner mode must not execute, got %x", eng.Invoked)
	}
	if len(eng.Validated) != 1 || eng.Validated[0] != h {
		t.Fatalf("expected %x validated, got %x", h, eng.Validated)
	}
}

func TestVerify_NullLogicHashNeverDispatched(t *testing.T) {
	x := h32(0x77)
	null := nftdata.NullTokenLogic
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10), TokenLogic: &null, Custom: []byte("A")})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(9), TokenLogic: &null, Custom: []byte("B")}))

	eng := testkit.NewEngine()
	if err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), eng); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(eng.Validated) != 0 || len(eng.Invoked) != 0 {
		t.Fatalf("null hash must never be dispatched")
	}
}

func TestVerify_MissingLogicModule(t *testing.T) {
	x := h32(0x77)
	h := h32(0xe5)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(10), TokenLogic: &h, Custom: []byte("A")})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x, Quantity: qty(9), TokenLogic: &h, Custom: []byte("A")}))

	eng := testkit.NewEngine()
	eng.Missing[h] = true
	err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), eng)
	wantCode(t, err, CodeMissingTokenLogicCellDep)

	eng = testkit.NewEngine()
	eng.NoEntry[h] = true
	err = Verify(memledger.NewQuery(tx, nftHash, governance[:]), eng)
	wantCode(t, err, CodeMissingTokenLogicFunction)
}

func TestVerify_MalformedPayload(t *testing.T) {
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, make([]byte, 40)) // 32 < len < 48

	err := Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeInvalidQuantityLength)

	tx = memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, make([]byte, 16))
	err = Verify(memledger.NewQuery(tx, nftHash, governance[:]), testkit.NewEngine())
	wantCode(t, err, CodeInvalidInstanceIDLength)
}

// mismatchQuery drops the matching positions to simulate a ledger whose
// script grouping disagrees with the output scan.
type mismatchQuery struct {
	ledger.Query
}

func (mismatchQuery) OutputPositions([32]byte) ([]uint32, error) {
	return nil, nil
}

func TestVerify_CellMismatch(t *testing.T) {
	x := h32(0x77)
	seed := ledger.OutPoint{TxHash: h32(0x51)}

	tx := memledger.NewTx().
		AddInput(seed, otherLock, &nftHash, data(nftdata.Record{InstanceID: x})).
		AddOutput(otherLock, &nftHash, data(nftdata.Record{InstanceID: x}))

	q := mismatchQuery{memledger.NewQuery(tx, nftHash, governance[:])}
	err := Verify(q, testkit.NewEngine())
	wantCode(t, err, CodeUnexpectedCellMismatch)
}
