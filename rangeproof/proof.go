package rangeproof

import (
	"math/big"
	"math/bits"

	"github.com/beezynetwork/bppe-go/curve"
)

// ErrCode is the numeric validation-failure code the engine reports instead
// of a Go error, matching the out-parameter contract of the original
// bppe_gen/bppe_verify error codes 1-10.
type ErrCode uint8

const (
	ErrNone ErrCode = 0

	// ErrValueCount: the value/mask/mask2 counts are zero, mismatched, or
	// exceed Params.VMax (bppe_gen check 1).
	ErrValueCount ErrCode = 1
	// ErrCommitmentCount: a proof was presented with zero commitments
	// (bppe_verify check 2).
	ErrCommitmentCount ErrCode = 2
	// ErrMasksNotReduced: a blinding mask is not a reduced scalar, or a
	// proof's L/R vectors are empty or of mismatched length (bppe_gen check
	// 3 / bppe_verify check 3).
	ErrMasksNotReduced ErrCode = 3
	// ErrSigNotReduced: r, s, delta_1 or delta_2 in the proof is not a
	// reduced scalar (bppe_verify check 4).
	ErrSigNotReduced ErrCode = 4
	// ErrLRSizeMismatch: len(L) does not equal log2(m)+log2(N) for the
	// commitment count the proof claims (bppe_verify check 5).
	ErrLRSizeMismatch ErrCode = 5
	// ErrBadA0: A0 does not decode to a valid curve point.
	ErrBadA0 ErrCode = 6
	// ErrBadA: A does not decode to a valid curve point.
	ErrBadA ErrCode = 7
	// ErrBadB: B does not decode to a valid curve point.
	ErrBadB ErrCode = 8
	// ErrBadL: some L[i] does not decode to a valid curve point.
	ErrBadL ErrCode = 9
	// ErrBadR: some R[i] does not decode to a valid curve point.
	ErrBadR ErrCode = 10
)

// Params bundles the compile-time-ish protocol parameters: the bit width N
// each committed value is range-checked against, and the largest number of
// values a single proof may aggregate. Modeled on the teacher's
// bulletproofs.BulletProofSetupParams / bulletproofs.Setup pattern.
type Params struct {
	Curve curve.Curve
	N     int
	Log2N int
	VMax  int
}

// NewParams builds Params for an n-bit range (n must be a power of two) and
// a maximum aggregation width vMax.
func NewParams(c curve.Curve, n, vMax int) *Params {
	if n <= 0 || n&(n-1) != 0 {
		panic("rangeproof: N must be a power of two")
	}
	if n > 255 {
		panic("rangeproof: N too large")
	}
	return &Params{
		Curve: c,
		N:     n,
		Log2N: bits.Len(uint(n)) - 1,
		VMax:  vMax,
	}
}

// Proof is the aggregated BP+ range proof: a log2(mn)-round zk-WIP
// transcript (L, R) plus the three round-zero/final commitments A0, A, B and
// the four closing scalars r, s, delta_1, delta_2.
type Proof struct {
	L []curve.Element
	R []curve.Element

	A0 curve.Element
	A  curve.Element
	B  curve.Element

	// RFinal and SFinal close the zk-WIP argument's final round (the
	// original's scalars r and s); named with a Final suffix since the
	// proof already uses R for the round commitment vector.
	RFinal *big.Int
	SFinal *big.Int
	Delta1 *big.Int
	Delta2 *big.Int
}

