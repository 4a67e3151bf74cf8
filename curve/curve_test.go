package curve_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beezynetwork/bppe-go/curve"
)

func TestRistretto255_GeneratorArithmetic(t *testing.T) {
	c := curve.Ristretto255()
	g := c.Generator()

	two := big.NewInt(2)
	doubled := c.Element().Scale(g, two)
	added := c.Element().Add(g, g)
	assert.True(t, doubled.IsEqual(added))

	viaBase := c.Element().BaseScale(two)
	assert.True(t, viaBase.IsEqual(doubled))
}

func TestRistretto255_IdentityAndNegation(t *testing.T) {
	c := curve.Ristretto255()
	g := c.Generator()
	neg := c.Element().Negate(g)
	sum := c.Element().Add(g, neg)
	assert.True(t, sum.IsIdentity())
}

func TestRistretto255_MarshalRoundTrip(t *testing.T) {
	c := curve.Ristretto255()
	p := c.Random()
	bs, err := p.MarshalBinary()
	require.NoError(t, err)

	decoded := c.Element()
	require.NoError(t, decoded.UnmarshalBinary(bs))
	assert.True(t, p.IsEqual(decoded))
}

func TestHashToElement_Deterministic(t *testing.T) {
	c := curve.Ristretto255()
	a := c.HashToElement("bppe/G/0")
	b := c.HashToElement("bppe/G/0")
	assert.True(t, a.IsEqual(b))

	other := c.HashToElement("bppe/G/1")
	assert.False(t, a.IsEqual(other))
}

func TestOneOverEight(t *testing.T) {
	c := curve.Ristretto255()
	inv := curve.OneOverEight(c)
	eight := big.NewInt(8)
	prod := new(big.Int).Mod(new(big.Int).Mul(inv, eight), c.Order())
	assert.Equal(t, big.NewInt(1), prod)
}

func TestBatchInverse(t *testing.T) {
	c := curve.Ristretto255()
	xs := []*big.Int{big.NewInt(3), big.NewInt(5), big.NewInt(7)}
	invs := curve.BatchInverse(xs, c)
	for i, x := range xs {
		prod := new(big.Int).Mod(new(big.Int).Mul(x, invs[i]), c.Order())
		assert.Equal(t, big.NewInt(1), prod)
	}
}
