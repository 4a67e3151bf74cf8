package rangeproof

import (
	"math/big"

	"github.com/beezynetwork/bppe-go/curve"
)

// Commitment is a double-blinded Pedersen commitment V = v*G + m1*H + m2*H2,
// the Zarcanum Appendix D extension of the classic single-blinded
// commitment the teacher's util.PedersenCommit produced.
type Commitment = curve.Element

// Commit2 computes v*G + m1*H + m2*H2 against the curve's generator table.
func Commit2(c curve.Curve, v, m1, m2 *big.Int) Commitment {
	gt := curve.Generators(c)
	out := c.Element().Scale(gt.G(), v)
	tmp := c.Element().Scale(gt.H(), m1)
	out.Add(out, tmp)
	tmp.Scale(gt.H2(), m2)
	out.Add(out, tmp)
	return out
}
