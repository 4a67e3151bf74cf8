package rangeproof_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beezynetwork/bppe-go/curve"
	"github.com/beezynetwork/bppe-go/rangeproof"
)

func testParams() *rangeproof.Params {
	return rangeproof.NewParams(curve.Ristretto255(), 64, 16)
}

func randomMasks(c curve.Curve, n int) rangeproof.ScalarVector {
	out := make(rangeproof.ScalarVector, n)
	for i := range out {
		out[i] = curve.RandomScalar(c)
	}
	return out
}

func valuesOf(vs ...uint64) rangeproof.ScalarVector {
	out := make(rangeproof.ScalarVector, len(vs))
	for i, v := range vs {
		out[i] = new(big.Int).SetUint64(v)
	}
	return out
}

func proveAndVerify(t *testing.T, p *rangeproof.Params, values rangeproof.ScalarVector) bool {
	t.Helper()
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)
	require.NotNil(t, proof)
	ok, _ := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
	return ok
}

// S1: a single zero value with random blindings verifies.
func TestScenarioS1_SingleZero(t *testing.T) {
	p := testParams()
	assert.True(t, proveAndVerify(t, p, valuesOf(0)))
}

// S2: small powers of two verify.
func TestScenarioS2_SmallValues(t *testing.T) {
	p := testParams()
	assert.True(t, proveAndVerify(t, p, valuesOf(1, 2, 4, 8)))
}

// S3: boundary values (max 64-bit value, zero, one, the top bit) verify.
func TestScenarioS3_BoundaryValues(t *testing.T) {
	p := testParams()
	maxVal := new(big.Int).SetUint64(^uint64(0))
	topBit := new(big.Int).Lsh(big.NewInt(1), 63)
	values := rangeproof.ScalarVector{maxVal, big.NewInt(0), big.NewInt(1), topBit}
	assert.True(t, proveAndVerify(t, p, values))
}

// S4: a batch of independently generated proofs of varying aggregation
// width all verify together.
func TestScenarioS4_BatchOfVaryingWidths(t *testing.T) {
	p := testParams()
	widths := []int{1, 2, 3, 5, 7, 8, 8, 16}

	var proofs []*rangeproof.Proof
	var commitmentSets [][]rangeproof.Commitment
	for _, n := range widths {
		vals := make(rangeproof.ScalarVector, n)
		for i := range vals {
			vals[i] = big.NewInt(int64(i + 1))
		}
		m1 := randomMasks(p.Curve, n)
		m2 := randomMasks(p.Curve, n)
		proof, commitments, code := rangeproof.Prove(p, vals, m1, m2)
		require.Equal(t, rangeproof.ErrNone, code)
		proofs = append(proofs, proof)
		commitmentSets = append(commitmentSets, commitments)
	}

	ok, _ := rangeproof.Verify(p, proofs, commitmentSets)
	assert.True(t, ok)
}

// S5: perturbing π.r breaks verification.
func TestScenarioS5_TamperedRFinal(t *testing.T) {
	p := testParams()
	values := valuesOf(1, 2, 4, 8)
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)

	proof.RFinal = curve.Add(proof.RFinal, curve.One(), p.Curve)

	ok, _ := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
	assert.False(t, ok)
}

// S6: swapping in an unrelated commitment breaks verification.
func TestScenarioS6_SwappedCommitment(t *testing.T) {
	p := testParams()
	values := valuesOf(1, 2, 4, 8)
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)

	other, otherM1, otherM2 := big.NewInt(999), curve.RandomScalar(p.Curve), curve.RandomScalar(p.Curve)
	unrelated := rangeproof.Commit2(p.Curve, other, otherM1, otherM2)
	commitments[0] = unrelated

	ok, _ := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
	assert.False(t, ok)
}

// Completeness: honestly generated proofs over values inside range verify.
func TestCompleteness(t *testing.T) {
	p := testParams()
	cases := [][]uint64{
		{0},
		{1},
		{12345},
		{1, 2, 3, 4, 5, 6, 7},
	}
	for _, vs := range cases {
		assert.True(t, proveAndVerify(t, p, valuesOf(vs...)))
	}
}

// Batch completeness: any list of individually-valid proofs verifies
// together, independent of aggregation width or value content.
func TestBatchCompleteness(t *testing.T) {
	p := testParams()
	var proofs []*rangeproof.Proof
	var commitmentSets [][]rangeproof.Commitment
	for _, vs := range [][]uint64{{0}, {1, 2}, {7, 8, 9, 10}} {
		values := valuesOf(vs...)
		m1 := randomMasks(p.Curve, len(values))
		m2 := randomMasks(p.Curve, len(values))
		proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
		require.Equal(t, rangeproof.ErrNone, code)
		proofs = append(proofs, proof)
		commitmentSets = append(commitmentSets, commitments)
	}
	ok, _ := rangeproof.Verify(p, proofs, commitmentSets)
	assert.True(t, ok)
}

// Binding: flipping a bit in the encoding of L[0] is caught whenever the
// flipped bytes still decode to a valid point.
func TestBinding_TamperedL(t *testing.T) {
	p := testParams()
	values := valuesOf(1, 2, 4, 8)
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)

	wire, err := proof.L[0].MarshalBinary()
	require.NoError(t, err)
	wire[0] ^= 0x01
	tampered := p.Curve.Element()
	if err := tampered.UnmarshalBinary(wire); err == nil {
		proof.L[0] = tampered
		ok, _ := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
		assert.False(t, ok)
	}
}

// Commitment integrity: 8*V_i == v_i*G + m1_i*H + m2_i*H2.
func TestCommitmentIntegrity(t *testing.T) {
	p := testParams()
	values := valuesOf(5, 17, 42)
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	_, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)

	for i := range values {
		scaled := p.Curve.Element().Scale(commitments[i], big.NewInt(8))
		expected := rangeproof.Commit2(p.Curve, values[i], m1[i], m2[i])
		assert.True(t, scaled.IsEqual(expected))
	}
}

// Padding equivalence: a width that isn't a power of two verifies the same
// as its zero-padded power-of-two expansion.
func TestPaddingEquivalence(t *testing.T) {
	p := testParams()
	assert.True(t, proveAndVerify(t, p, valuesOf(1, 2, 3)))
	assert.True(t, proveAndVerify(t, p, valuesOf(1, 2, 3, 0)))
}

// Input validation: malformed inputs are rejected at the prove/verify
// boundary before any proof can be constructed or checked.
func TestProve_RejectsEmptyValues(t *testing.T) {
	p := testParams()
	_, _, code := rangeproof.Prove(p, rangeproof.ScalarVector{}, rangeproof.ScalarVector{}, rangeproof.ScalarVector{})
	assert.Equal(t, rangeproof.ErrValueCount, code)
}

func TestProve_RejectsOversizedBatch(t *testing.T) {
	p := testParams()
	values := make(rangeproof.ScalarVector, p.VMax+1)
	for i := range values {
		values[i] = big.NewInt(1)
	}
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	_, _, code := rangeproof.Prove(p, values, m1, m2)
	assert.Equal(t, rangeproof.ErrValueCount, code)
}

func TestProve_RejectsUnreducedMask(t *testing.T) {
	p := testParams()
	values := valuesOf(1)
	badMask := new(big.Int).Add(p.Curve.Order(), big.NewInt(1))
	_, _, code := rangeproof.Prove(p, values, rangeproof.ScalarVector{badMask}, rangeproof.ScalarVector{big.NewInt(0)})
	assert.Equal(t, rangeproof.ErrMasksNotReduced, code)
}

func TestVerify_RejectsEmptyBatch(t *testing.T) {
	p := testParams()
	ok, code := rangeproof.Verify(p, nil, nil)
	assert.False(t, ok)
	assert.Equal(t, rangeproof.ErrValueCount, code)
}

func TestVerify_RejectsMismatchedLRLength(t *testing.T) {
	p := testParams()
	values := valuesOf(1, 2)
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))
	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)

	proof.R = proof.R[:len(proof.R)-1]
	_, errCode := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
	assert.Equal(t, rangeproof.ErrMasksNotReduced, errCode)
}

// Soundness: a value at or beyond the 2^N range boundary must not verify.
// Prove never re-checks that a value fits in N bits (that is the caller's
// responsibility); it bit-decomposes only bits 0..N-1 (v mod 2^N) while the
// commitment it emits binds the full, untruncated value. For v = 2^N those
// two diverge — the decomposition attests to 0 while the commitment opens
// to 2^N — and the resulting proof must fail verification.
func TestVerify_RejectsOutOfRangeValue(t *testing.T) {
	p := testParams()
	overflow := new(big.Int).Lsh(big.NewInt(1), uint(p.N))
	values := rangeproof.ScalarVector{overflow}
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))

	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)
	require.NotNil(t, proof)

	ok, _ := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
	assert.False(t, ok)
}

// Soundness: aggregating one in-range value alongside one at the range
// boundary must still reject, confirming the bit-decomposition/commitment
// divergence is caught even when batched with an otherwise-valid value.
func TestVerify_RejectsOutOfRangeValueInBatch(t *testing.T) {
	p := testParams()
	overflow := new(big.Int).Lsh(big.NewInt(1), uint(p.N))
	values := rangeproof.ScalarVector{big.NewInt(7), overflow}
	m1 := randomMasks(p.Curve, len(values))
	m2 := randomMasks(p.Curve, len(values))

	proof, commitments, code := rangeproof.Prove(p, values, m1, m2)
	require.Equal(t, rangeproof.ErrNone, code)
	require.NotNil(t, proof)

	ok, _ := rangeproof.Verify(p, []*rangeproof.Proof{proof}, [][]rangeproof.Commitment{commitments})
	assert.False(t, ok)
}
