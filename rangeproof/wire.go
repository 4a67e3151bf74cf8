package rangeproof

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/beezynetwork/bppe-go/curve"
)

// scalarWidth is the fixed-width big-endian encoding used for every scalar
// on the wire (32 bytes is enough for any Ristretto255-family group order).
const scalarWidth = 32

func putScalar(buf []byte, x *big.Int) []byte {
	b := x.Bytes()
	if len(b) > scalarWidth {
		panic("rangeproof: scalar does not fit in wire width")
	}
	out := make([]byte, scalarWidth)
	copy(out[scalarWidth-len(b):], b)
	return append(buf, out...)
}

// MarshalBinary encodes the proof per the fixed layout:
// len_LR:u32 | L | R | A0 | A | B | r | s | delta_1 | delta_2
// — a positional byte contract, so this is the one place the module stays
// on encoding/binary rather than a general-purpose schema codec (see
// DESIGN.md).
func (pr *Proof) MarshalBinary() ([]byte, error) {
	if len(pr.L) != len(pr.R) {
		return nil, errors.New("rangeproof: L/R length mismatch")
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(pr.L)))
	out := append([]byte{}, lenBuf[:]...)

	for _, pt := range pr.L {
		b, err := pt.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, pt := range pr.R {
		b, err := pt.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	for _, pt := range []curve.Element{pr.A0, pr.A, pr.B} {
		b, err := pt.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	out = putScalar(out, pr.RFinal)
	out = putScalar(out, pr.SFinal)
	out = putScalar(out, pr.Delta1)
	out = putScalar(out, pr.Delta2)
	return out, nil
}

// UnmarshalProof decodes a wire-format proof against c, reporting the exact
// numeric error code (6-10) the original's from_public_key checks used for a
// malformed or non-canonical point, instead of a generic decode error —
// matching the spec's numeric out-parameter error contract end to end, wire
// decode included.
func UnmarshalProof(c curve.Curve, data []byte) (*Proof, ErrCode) {
	if len(data) < 4 {
		return nil, ErrLRSizeMismatch
	}
	lrLen := int(binary.BigEndian.Uint32(data[:4]))
	data = data[4:]

	// Ristretto255-family curves use a 32-byte compressed point encoding.
	const pointSize = 32
	readPoint := func(errCode ErrCode) (curve.Element, ErrCode) {
		if len(data) < pointSize {
			return nil, errCode
		}
		el := c.Element()
		if err := el.UnmarshalBinary(data[:pointSize]); err != nil {
			return nil, errCode
		}
		data = data[pointSize:]
		return el, ErrNone
	}

	pr := &Proof{L: make([]curve.Element, lrLen), R: make([]curve.Element, lrLen)}
	for i := 0; i < lrLen; i++ {
		pt, code := readPoint(ErrBadL)
		if code != ErrNone {
			return nil, code
		}
		pr.L[i] = pt
	}
	for i := 0; i < lrLen; i++ {
		pt, code := readPoint(ErrBadR)
		if code != ErrNone {
			return nil, code
		}
		pr.R[i] = pt
	}
	var code ErrCode
	if pr.A0, code = readPoint(ErrBadA0); code != ErrNone {
		return nil, code
	}
	if pr.A, code = readPoint(ErrBadA); code != ErrNone {
		return nil, code
	}
	if pr.B, code = readPoint(ErrBadB); code != ErrNone {
		return nil, code
	}

	readScalar := func() (*big.Int, bool) {
		if len(data) < scalarWidth {
			return nil, false
		}
		x := new(big.Int).SetBytes(data[:scalarWidth])
		data = data[scalarWidth:]
		return x, true
	}
	var ok bool
	if pr.RFinal, ok = readScalar(); !ok {
		return nil, ErrSigNotReduced
	}
	if pr.SFinal, ok = readScalar(); !ok {
		return nil, ErrSigNotReduced
	}
	if pr.Delta1, ok = readScalar(); !ok {
		return nil, ErrSigNotReduced
	}
	if pr.Delta2, ok = readScalar(); !ok {
		return nil, ErrSigNotReduced
	}
	return pr, ErrNone
}
