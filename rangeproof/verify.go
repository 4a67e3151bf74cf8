package rangeproof

import (
	"math/big"
	"math/bits"

	"github.com/beezynetwork/bppe-go/curve"
	"github.com/beezynetwork/bppe-go/transcript"
)

// interm holds one proof's re-derived transcript state, the Go equivalent
// of the original's intermediate_element_t.
type interm struct {
	y, z, zSq         *big.Int
	e, eSq            ScalarVector
	eFinal, eFinalSq  *big.Int
	invEOffset        int
	invYOffset        int
	log2m, m, mn      int
}

// Verify batch-checks an arbitrary list of (proof, commitments) pairs in a
// single aggregated multi-scalar-multiplication, per the original's
// bppe_verify "practical optimizations" (random per-proof weighting,
// collapsing every round's L/R/A0/A/B terms into one check).
func Verify(p *Params, proofs []*Proof, commitmentSets [][]Commitment) (bool, ErrCode) {
	c := p.Curve
	kn := len(proofs)
	if kn == 0 || kn != len(commitmentSets) {
		return false, ErrValueCount
	}

	interms := make([]interm, kn)
	log2mMax := 0
	for k := 0; k < kn; k++ {
		sig := proofs[k]
		commitments := commitmentSets[k]
		if len(commitments) == 0 {
			return false, ErrCommitmentCount
		}
		if len(sig.L) == 0 || len(sig.L) != len(sig.R) {
			return false, ErrMasksNotReduced
		}
		if !curve.IsReduced(sig.RFinal, c) || !curve.IsReduced(sig.SFinal, c) ||
			!curve.IsReduced(sig.Delta1, c) || !curve.IsReduced(sig.Delta2, c) {
			return false, ErrSigNotReduced
		}

		im := &interms[k]
		im.log2m = ceilLog2(len(commitments))
		if im.log2m > log2mMax {
			log2mMax = im.log2m
		}
		if len(sig.L) != im.log2m+p.Log2N {
			return false, ErrLRSizeMismatch
		}
		im.m = 1 << im.log2m
		im.mn = im.m * p.N
	}
	mMax := 1 << log2mMax
	mnMax := mMax * p.N

	batch := make([]*big.Int, 0, kn*2)
	for k := 0; k < kn; k++ {
		sig := proofs[k]
		commitments := commitmentSets[k]
		im := &interms[k]

		e := transcript.InitialTranscript(c)
		tr := transcript.NewProofTranscript(c, e, commitments)
		tr.AbsorbScalar(e).AbsorbPoint(sig.A0)
		im.y = tr.Challenge()
		im.z = transcript.HashScalar(c, im.y)
		im.zSq = curve.Mul(im.z, im.z, c)
		e = im.z

		im.invYOffset = len(batch)
		batch = append(batch, im.y)
		im.invEOffset = len(batch)

		im.e = make(ScalarVector, len(sig.L))
		im.eSq = make(ScalarVector, len(sig.L))
		for i := range sig.L {
			tr.AbsorbScalar(e).AbsorbPoint(sig.L[i]).AbsorbPoint(sig.R[i])
			e = tr.Challenge()
			im.e[i] = e
			im.eSq[i] = curve.Mul(e, e, c)
			batch = append(batch, e)
		}

		tr.AbsorbScalar(e).AbsorbPoint(sig.A).AbsorbPoint(sig.B)
		im.eFinal = tr.Challenge()
		im.eFinalSq = curve.Mul(im.eFinal, im.eFinal, c)
	}

	batchInv := curve.BatchInverse(batch, c)

	gScalars := NewScalarVector(mnMax)
	hScalars := NewScalarVector(mnMax)
	gScalar := big.NewInt(0)
	hScalar := big.NewInt(0)
	h2Scalar := big.NewInt(0)
	summand := c.Identity()

	twoNMinusOne := curve.TwoPowNMinusOne(p.N)

	for k := 0; k < kn; k++ {
		sig := proofs[k]
		commitments := commitmentSets[k]
		im := &interms[k]

		rwf := curve.RandomScalar(c)

		d := NewScalarMatrix(im.m, p.N)
		d.Set(0, 0, im.zSq)
		for i := 1; i < im.m; i++ {
			d.Set(i, 0, curve.Mul(d.At(i-1, 0), im.zSq, c))
		}
		for j := 1; j < p.N; j++ {
			for i := 0; i < im.m; i++ {
				d.Set(i, j, curve.Add(d.At(i, j-1), d.At(i, j-1), c))
			}
		}
		dFlat := d.Flatten()
		sumD := curve.Mul(twoNMinusOne, curve.SumOfPowers(im.zSq, im.log2m, c), c)

		yInv := batchInv[im.invYOffset]
		getEInv := func(i int) *big.Int { return batchInv[im.invEOffset+i] }

		log2mn := len(sig.L)
		sVec := make(ScalarVector, im.mn)
		prod := getEInv(0)
		for i := 1; i < log2mn; i++ {
			prod = curve.Mul(prod, getEInv(i), c)
		}
		sVec[0] = prod
		for i := 1; i < im.mn; i++ {
			baseIdx := i & (i - 1)
			bitIdx := log2mn - bits.TrailingZeros(uint(i)) - 1
			sVec[i] = curve.Mul(sVec[baseIdx], im.eSq[bitIdx], c)
		}

		yInvPowers := make(ScalarVector, im.mn)
		yInvPowers[0] = curve.One()
		for i := 1; i < im.mn; i++ {
			yInvPowers[i] = curve.Mul(yInvPowers[i-1], yInv, c)
		}

		yPowMnP1 := new(big.Int).Set(im.y)
		for i := 0; i < log2mn; i++ {
			yPowMnP1 = curve.Mul(yPowMnP1, yPowMnP1, c)
		}
		yPowMnP1 = curve.Mul(yPowMnP1, im.y, c)

		rwfESqZ := curve.Mul(curve.Mul(rwf, im.eFinalSq, c), im.z, c)
		rwfRE := curve.Mul(curve.Mul(rwf, im.eFinal, c), sig.RFinal, c)
		for i := 0; i < im.mn; i++ {
			gScalars[i] = curve.Add(gScalars[i],
				curve.Add(curve.Mul(curve.Mul(rwfRE, yInvPowers[i], c), sVec[i], c), rwfESqZ, c), c)
		}

		rwfSE := curve.Mul(curve.Mul(rwf, sig.SFinal, c), im.eFinal, c)
		rwfESqY := curve.Mul(curve.Mul(rwf, im.eFinalSq, c), im.y, c)
		for i := im.mn - 1; i >= 0; i-- {
			term := curve.Sub(curve.Mul(rwfSE, sVec[im.mn-1-i], c), rwfESqZ, c)
			term = curve.Sub(term, curve.Mul(rwfESqY, dFlat[i], c), c)
			hScalars[i] = curve.Add(hScalars[i], term, c)
			rwfESqY = curve.Mul(rwfESqY, im.y, c)
		}

		gScalar = curve.Add(gScalar, curve.Mul(curve.Mul(curve.Mul(rwf, sig.RFinal, c), im.y, c), sig.SFinal, c), c)
		gScalar = curve.Add(gScalar, curve.Mul(curve.Mul(rwfESqY, sumD, c), im.z, c), c)
		sumY := curve.SumOfPowers(im.y, log2mn, c)
		gScalar = curve.Sub(gScalar, curve.Mul(curve.Mul(rwf, im.eFinalSq, c), curve.Mul(curve.Sub(im.z, im.zSq, c), sumY, c), c), c)

		hScalar = curve.Add(hScalar, curve.Mul(rwf, sig.Delta1, c), c)
		h2Scalar = curve.Add(h2Scalar, curve.Mul(rwf, sig.Delta2, c), c)

		summand8 := c.Identity()
		neg := c.Element()
		neg.Scale(sig.A0, curve.Mul(rwf, im.eFinalSq, c))
		summand8.Subtract(summand8, neg)

		eSqYMnp1ZsqPower := curve.Mul(rwf, curve.Mul(im.eFinalSq, yPowMnP1, c), c)
		for j := range commitments {
			eSqYMnp1ZsqPower = curve.Mul(eSqYMnp1ZsqPower, im.zSq, c)
			neg.Scale(commitments[j], eSqYMnp1ZsqPower)
			summand8.Subtract(summand8, neg)
		}

		rwfESq := curve.Mul(rwf, im.eFinalSq, c)
		for j := 0; j < log2mn; j++ {
			neg.Scale(sig.L[j], curve.Mul(rwfESq, im.eSq[j], c))
			summand8.Subtract(summand8, neg)
			eInvJ := getEInv(j)
			neg.Scale(sig.R[j], curve.Mul(rwfESq, curve.Mul(eInvJ, eInvJ, c), c))
			summand8.Subtract(summand8, neg)
		}

		neg.Scale(sig.A, curve.Mul(rwf, im.eFinal, c))
		summand8.Subtract(summand8, neg)
		neg.Scale(sig.B, rwf)
		summand8.Subtract(summand8, neg)

		summand8.Scale(summand8, big.NewInt(8))
		summand.Add(summand, summand8)
	}

	ghExp := Commit2(c, gScalar, hScalar, h2Scalar)

	gt := curve.Generators(c)
	final := MultiScale(gt.GVec(mnMax), gScalars, c)
	final.Add(final, MultiScale(gt.HVec(mnMax), hScalars, c))
	final.Add(final, summand)
	final.Add(final, ghExp)

	if !final.IsIdentity() {
		return false, ErrNone
	}
	return true, ErrNone
}
