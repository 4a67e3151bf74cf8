package rangeproof

import (
	"math/big"

	"github.com/beezynetwork/bppe-go/curve"
	"github.com/beezynetwork/bppe-go/transcript"
)

// ceilLog2 returns the smallest k such that 2^k >= n, n > 0.
func ceilLog2(n int) int {
	k := 0
	for (1 << k) < n {
		k++
	}
	return k
}

// Prove builds an aggregated BP+ range proof that every value in values lies
// in [0, 2^p.N), double-blinded by masks and masks2. It returns the proof
// together with the 1/8-scaled commitments it attests to — mirroring the
// original bppe_gen, which emits both the signature and the commitment
// vector it just built.
func Prove(p *Params, values, masks, masks2 ScalarVector) (*Proof, []Commitment, ErrCode) {
	c := p.Curve

	if len(values) == 0 || len(values) > p.VMax || len(values) != len(masks) || len(masks) != len(masks2) {
		return nil, nil, ErrValueCount
	}
	for i := range masks {
		if !curve.IsReduced(masks[i], c) || !curve.IsReduced(masks2[i], c) {
			return nil, nil, ErrMasksNotReduced
		}
	}

	log2m := ceilLog2(len(values))
	m := 1 << log2m
	mn := m * p.N
	log2mn := log2m + p.Log2N

	oneOverEight := curve.OneOverEight(c)

	commitments := make([]Commitment, len(values))
	for i := range values {
		commitments[i] = Commit2(c,
			curve.Mul(values[i], oneOverEight, c),
			curve.Mul(masks[i], oneOverEight, c),
			curve.Mul(masks2[i], oneOverEight, c))
	}

	// aL/aR bit-decompose each value (BP+ paper, page 15, eq. 11): aL is the
	// bit vector, aR = aL - 1, so that aL o aR = 0. Padding rows (beyond the
	// supplied values, up to the next power of two m) get aR = -1, aL = 0.
	aLs := NewScalarMatrix(m, p.N)
	aRs := NewScalarMatrix(m, p.N)
	minusOne := curve.MinusOne(c)
	for i := range values {
		for j := 0; j < p.N; j++ {
			if values[i].Bit(j) == 1 {
				aLs.Set(i, j, curve.One())
			} else {
				aRs.Set(i, j, minusOne)
			}
		}
	}
	for i := len(values); i < m; i++ {
		for j := 0; j < p.N; j++ {
			aRs.Set(i, j, minusOne)
		}
	}

	e := transcript.InitialTranscript(c)
	tr := transcript.NewProofTranscript(c, e, commitments)

	gt := curve.Generators(c)
	gVec := gt.GVec(mn)
	hVec := gt.HVec(mn)

	// Zarcanum Fig. D.3: A0 = alpha_1*H + alpha_2*H2 + Σ aL_i*G_i + aR_i*H_i
	alpha1 := curve.RandomScalar(c)
	alpha2 := curve.RandomScalar(c)
	A0 := c.Element().Scale(gt.H(), alpha1)
	tmp := c.Element().Scale(gt.H2(), alpha2)
	A0.Add(A0, tmp)
	aLFlat, aRFlat := aLs.Flatten(), aRs.Flatten()
	for i := 0; i < mn; i++ {
		tmp.Scale(gVec[i], aLFlat[i])
		A0.Add(A0, tmp)
		tmp.Scale(hVec[i], aRFlat[i])
		A0.Add(A0, tmp)
	}
	A0.Scale(A0, oneOverEight)

	tr.AbsorbScalar(e).AbsorbPoint(A0)
	y := tr.Challenge()
	z := transcript.HashScalar(c, y)
	e = z

	// d matrix: d(i,j) = 2^j * z^(2(i+1)) (BP+ paper, page 17), column-major.
	zSq := curve.Mul(z, z, c)
	d := NewScalarMatrix(m, p.N)
	d.Set(0, 0, zSq)
	for i := 1; i < m; i++ {
		d.Set(i, 0, curve.Mul(d.At(i-1, 0), zSq, c))
	}
	for j := 1; j < p.N; j++ {
		for i := 0; i < m; i++ {
			d.Set(i, j, curve.Add(d.At(i, j-1), d.At(i, j-1), c))
		}
	}

	yPowers := make(ScalarVector, mn+2)
	yPowers[0] = curve.One()
	for i := 1; i <= mn+1; i++ {
		yPowers[i] = curve.Mul(yPowers[i-1], y, c)
	}
	yMnP1 := yPowers[mn+1]

	a := aLFlat.SubScalar(z, c)
	b := make(ScalarVector, mn)
	dFlat := d.Flatten()
	for i := 0; i < mn; i++ {
		b[i] = curve.Add(curve.Add(aRFlat[i], z, c), curve.Mul(dFlat[i], yPowers[mn-i], c), c)
	}

	alphaHat1 := big.NewInt(0)
	alphaHat2 := big.NewInt(0)
	for i := range values {
		alphaHat1 = curve.Add(alphaHat1, curve.Mul(d.At(i, 0), masks[i], c), c)
		alphaHat2 = curve.Add(alphaHat2, curve.Mul(d.At(i, 0), masks2[i], c), c)
	}
	alphaHat1 = curve.Add(alpha1, curve.Mul(yMnP1, alphaHat1, c), c)
	alphaHat2 = curve.Add(alpha2, curve.Mul(yMnP1, alphaHat2, c), c)

	yInv := curve.Inverse(y, c)
	yInvPowers := make(ScalarVector, mn/2+1)
	yInvPowers[0] = curve.One()
	for i := 1; i < len(yInvPowers); i++ {
		yInvPowers[i] = curve.Mul(yInvPowers[i-1], yInv, c)
	}

	g := make(PointVector, mn)
	h := make(PointVector, mn)
	copy(g, gVec)
	copy(h, hVec)

	proof := &Proof{L: make([]curve.Element, log2mn), R: make([]curve.Element, log2mn)}

	ni := 0
	for n := mn / 2; n >= 1; n /= 2 {
		dL := curve.RandomScalar(c)
		dL2 := curve.RandomScalar(c)
		dR := curve.RandomScalar(c)
		dR2 := curve.RandomScalar(c)

		cL := big.NewInt(0)
		for i := 0; i < n; i++ {
			cL = curve.Add(cL, curve.Mul(curve.Mul(a[i], yPowers[i+1], c), b[n+i], c), c)
		}
		cR := big.NewInt(0)
		for i := 0; i < n; i++ {
			cR = curve.Add(cR, curve.Mul(curve.Mul(a[n+i], yPowers[i+1], c), b[i], c), c)
		}
		cR = curve.Mul(cR, yPowers[n], c)

		sum := c.Identity()
		scaled := c.Element()
		for i := 0; i < n; i++ {
			scaled.Scale(g[n+i], a[i])
			sum.Add(sum, scaled)
		}
		L := Commit2(c, cL, dL, dL2)
		for i := 0; i < n; i++ {
			scaled.Scale(h[i], b[n+i])
			L.Add(L, scaled)
		}
		scaled.Scale(sum, yInvPowers[n])
		L.Add(L, scaled)
		L.Scale(L, oneOverEight)

		sum = c.Identity()
		for i := 0; i < n; i++ {
			scaled.Scale(g[i], a[n+i])
			sum.Add(sum, scaled)
		}
		R := Commit2(c, cR, dR, dR2)
		for i := 0; i < n; i++ {
			scaled.Scale(h[n+i], b[i])
			R.Add(R, scaled)
		}
		scaled.Scale(sum, yPowers[n])
		R.Add(R, scaled)
		R.Scale(R, oneOverEight)

		proof.L[ni] = L
		proof.R[ni] = R

		tr.AbsorbScalar(e).AbsorbPoint(L).AbsorbPoint(R)
		e = tr.Challenge()

		eSq := curve.Mul(e, e, c)
		eInv := curve.Inverse(e, c)
		eInvSq := curve.Mul(eInv, eInv, c)
		eYInvN := curve.Mul(e, yInvPowers[n], c)
		eInvYN := curve.Mul(eInv, yPowers[n], c)

		for i := 0; i < n; i++ {
			g[i] = c.Element().Scale(g[i], eInv)
			t2 := c.Element().Scale(g[n+i], eYInvN)
			g[i].Add(g[i], t2)
		}
		for i := 0; i < n; i++ {
			h[i] = c.Element().Scale(h[i], e)
			t2 := c.Element().Scale(h[n+i], eInv)
			h[i].Add(h[i], t2)
		}
		for i := 0; i < n; i++ {
			a[i] = curve.Add(curve.Mul(e, a[i], c), curve.Mul(eInvYN, a[n+i], c), c)
		}
		for i := 0; i < n; i++ {
			b[i] = curve.Add(curve.Mul(eInv, b[i], c), curve.Mul(e, b[n+i], c), c)
		}

		alphaHat1 = curve.Add(alphaHat1, curve.Add(curve.Mul(eSq, dL, c), curve.Mul(eInvSq, dR, c), c), c)
		alphaHat2 = curve.Add(alphaHat2, curve.Add(curve.Mul(eSq, dL2, c), curve.Mul(eInvSq, dR2, c), c), c)

		ni++
	}

	r := curve.RandomScalar(c)
	s := curve.RandomScalar(c)
	delta1 := curve.RandomScalar(c)
	delta2 := curve.RandomScalar(c)
	eta1 := curve.RandomScalar(c)
	eta2 := curve.RandomScalar(c)

	rybPlusSya := curve.Mul(y, curve.Add(curve.Mul(r, b[0], c), curve.Mul(s, a[0], c), c), c)
	A := Commit2(c, rybPlusSya, delta1, delta2)
	tmp2 := c.Element().Scale(g[0], r)
	A.Add(A, tmp2)
	tmp2.Scale(h[0], s)
	A.Add(A, tmp2)
	A.Scale(A, oneOverEight)
	proof.A = A

	rys := curve.Mul(curve.Mul(r, y, c), s, c)
	B := Commit2(c, rys, eta1, eta2)
	B.Scale(B, oneOverEight)
	proof.B = B

	tr.AbsorbScalar(e).AbsorbPoint(A).AbsorbPoint(B)
	e = tr.Challenge()

	proof.RFinal = curve.Add(r, curve.Mul(e, a[0], c), c)
	proof.SFinal = curve.Add(s, curve.Mul(e, b[0], c), c)
	eSq := curve.Mul(e, e, c)
	proof.Delta1 = curve.Add(curve.Add(eta1, curve.Mul(e, delta1, c), c), curve.Mul(eSq, alphaHat1, c), c)
	proof.Delta2 = curve.Add(curve.Add(eta2, curve.Mul(e, delta2, c), c), curve.Mul(eSq, alphaHat2, c), c)

	proof.A0 = A0
	return proof, commitments, ErrNone
}
