package curve

import (
	"crypto/rand"
	"math/big"
)

// Scalar helpers operate on *big.Int reduced modulo a Curve's group order ℓ.
// The engine keeps scalars as plain *big.Int rather than an opaque type so
// that the matrix/prover/verifier code can use math/big directly, the same
// way the teacher's vector helpers did before the ing-bank/zkrp wrapper was
// dropped (see DESIGN.md).

// Reduce returns x mod ℓ, normalised to [0, ℓ).
func Reduce(x *big.Int, c Curve) *big.Int {
	return new(big.Int).Mod(x, c.Order())
}

// IsReduced reports whether x already lies in [0, ℓ).
func IsReduced(x *big.Int, c Curve) bool {
	return x.Sign() >= 0 && x.Cmp(c.Order()) < 0
}

// RandomScalar samples a uniform scalar in [0, ℓ).
func RandomScalar(c Curve) *big.Int {
	n, err := rand.Int(rand.Reader, c.Order())
	if err != nil {
		panic("curve: random scalar generation failed: " + err.Error())
	}
	return n
}

// Zero, One, MinusOne and OneOverEight are the fixed scalars the range-proof
// engine repeatedly needs: MinusOne for the aR = aL - 1 entries of the
// prover's bit matrix, OneOverEight for the prover's sub-group defence pre-scale.

func Zero() *big.Int { return big.NewInt(0) }
func One() *big.Int  { return big.NewInt(1) }

func MinusOne(c Curve) *big.Int {
	return new(big.Int).Sub(c.Order(), big.NewInt(1))
}

// OneOverEight returns the modular inverse of 8 modulo ℓ, i.e. the scalar s
// such that 8*s ≡ 1 (mod ℓ). The prover scales every emitted point by this
// value; the verifier undoes it by scaling the aggregate check by 8.
func OneOverEight(c Curve) *big.Int {
	eight := big.NewInt(8)
	inv := new(big.Int).ModInverse(eight, c.Order())
	if inv == nil {
		panic("curve: group order not coprime to 8")
	}
	return inv
}

// Inverse returns the modular inverse of x modulo ℓ. Panics on x ≡ 0, which
// never happens for honestly sampled Fiat-Shamir challenges except with
// negligible probability, and callers treat that outcome as a hard protocol
// failure rather than adversarial input (spec.md §7).
func Inverse(x *big.Int, c Curve) *big.Int {
	inv := new(big.Int).ModInverse(x, c.Order())
	if inv == nil {
		panic("curve: scalar has no inverse")
	}
	return inv
}

// BatchInverse inverts every element of xs modulo ℓ using a single modular
// inversion (Montgomery's trick), the same batching the verifier relies on
// to amortise the cost of inverting every proof's y and e challenges.
func BatchInverse(xs []*big.Int, c Curve) []*big.Int {
	n := len(xs)
	if n == 0 {
		return nil
	}
	prefix := make([]*big.Int, n)
	acc := big.NewInt(1)
	for i, x := range xs {
		acc = new(big.Int).Mod(new(big.Int).Mul(acc, x), c.Order())
		prefix[i] = acc
	}

	inv := Inverse(acc, c)

	out := make([]*big.Int, n)
	for i := n - 1; i >= 0; i-- {
		var prevPrefix *big.Int
		if i == 0 {
			prevPrefix = big.NewInt(1)
		} else {
			prevPrefix = prefix[i-1]
		}
		out[i] = new(big.Int).Mod(new(big.Int).Mul(inv, prevPrefix), c.Order())
		inv = new(big.Int).Mod(new(big.Int).Mul(inv, xs[i]), c.Order())
	}
	return out
}

// Pow returns base^exp mod ℓ.
func Pow(base *big.Int, exp int64, c Curve) *big.Int {
	return new(big.Int).Exp(base, big.NewInt(exp), c.Order())
}

// SumOfPowers returns Σ_{j=1}^{2^k} x^j mod ℓ, the closed-form building
// block the verifier uses when collapsing Σd into (2^N-1)·Σ(z²)^j and when
// folding the G_scalar's Σ y^j term. Computed by the doubling recurrence
// S(2^0) = x, S(2^i) = S(2^(i-1)) + x^(2^(i-1))·S(2^(i-1)), so it runs in
// O(k) multiplications rather than O(2^k).
func SumOfPowers(x *big.Int, k int, c Curve) *big.Int {
	sum := new(big.Int).Mod(x, c.Order())
	xPow := new(big.Int).Mod(x, c.Order())
	for i := 0; i < k; i++ {
		sum = Add(sum, Mul(xPow, sum, c), c)
		xPow = Mul(xPow, xPow, c)
	}
	return sum
}

// TwoPowNMinusOne returns 2^n - 1 as a plain (unreduced) integer; n is small
// (the bit-width of the range, e.g. 64), so no modular reduction is needed
// before it is folded into a scalar expression.
func TwoPowNMinusOne(n int) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(n)), big.NewInt(1))
}

func Neg(x *big.Int, c Curve) *big.Int {
	return new(big.Int).Mod(new(big.Int).Neg(x), c.Order())
}

func Add(a, b *big.Int, c Curve) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(a, b), c.Order())
}

func Sub(a, b *big.Int, c Curve) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), c.Order())
}

func Mul(a, b *big.Int, c Curve) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), c.Order())
}
