// Package transcript implements the Fiat-Shamir absorb/challenge discipline
// the range-proof engine uses to turn its interactive zk-WIP argument into a
// non-interactive one. It is grounded on the teacher's HashBP/HashBPSP and
// voteproof.getFSChallenge helpers, generalised into its own package per the
// engine's explicit "Transcript" component, and re-hashed with SHAKE256
// (golang.org/x/crypto/sha3) rather than the teacher's crypto/sha256 of a
// point's String() representation, to avoid hashing a human-readable
// (and therefore collision-prone) point encoding.
package transcript

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/beezynetwork/bppe-go/curve"
)

// Transcript is a running SHAKE256 sponge that absorbs length-delimited
// scalars and points, in the same add_scalar/add_pub_key/calc_hash sequence
// the original's hash_helper_t::hs_t drives.
type Transcript struct {
	c curve.Curve
	h sha3.ShakeHash
}

// New starts a fresh transcript domain-separated by label.
func New(c curve.Curve, label string) *Transcript {
	t := &Transcript{c: c, h: sha3.NewShake256()}
	t.absorb([]byte(label))
	return t
}

func (t *Transcript) absorb(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	t.h.Write(lenBuf[:])
	t.h.Write(b)
}

// AbsorbScalar feeds a scalar's big-endian byte representation into the
// transcript.
func (t *Transcript) AbsorbScalar(x *big.Int) *Transcript {
	t.absorb(x.Bytes())
	return t
}

// AbsorbPoint feeds a group element's compressed wire encoding into the
// transcript.
func (t *Transcript) AbsorbPoint(p curve.Element) *Transcript {
	b, err := p.MarshalBinary()
	if err != nil {
		panic("transcript: point marshal failed: " + err.Error())
	}
	t.absorb(b)
	return t
}

// AbsorbPoints absorbs a slice of points in order.
func (t *Transcript) AbsorbPoints(ps []curve.Element) *Transcript {
	for _, p := range ps {
		t.AbsorbPoint(p)
	}
	return t
}

// Challenge squeezes a 64-byte digest out of the transcript's current state,
// reduces it modulo the group order, and folds the digest back in so that
// the next challenge depends on everything absorbed so far including this
// challenge itself — the same chaining the original's calc_hash()/
// assign_calc_hash() sequence relies on.
func (t *Transcript) Challenge() *big.Int {
	digest := make([]byte, 64)
	// Clone the sponge state so the running transcript can keep absorbing
	// after this read, matching the original's reusable hsc object.
	reader := t.h.Clone()
	_, err := reader.Read(digest)
	if err != nil {
		panic("transcript: squeeze failed: " + err.Error())
	}
	t.absorb(digest)
	return new(big.Int).Mod(new(big.Int).SetBytes(digest), t.c.Order())
}

// HashScalar computes a one-shot, non-chained hash of a single scalar,
// reduced modulo the group order — the original's standalone
// hash_helper_t::hs(y) call used to derive z from y outside the main
// transcript object.
func HashScalar(c curve.Curve, x *big.Int) *big.Int {
	h := sha3.NewShake256()
	var lenBuf [4]byte
	b := x.Bytes()
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	h.Write(lenBuf[:])
	h.Write(b)
	digest := make([]byte, 64)
	if _, err := h.Read(digest); err != nil {
		panic("transcript: hash-scalar failed: " + err.Error())
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(digest), c.Order())
}

// InitialTranscript derives the fixed, domain-separated starting challenge
// e_0 every proof's Fiat-Shamir sequence begins from (the original's
// CT::get_initial_transcript()).
func InitialTranscript(c curve.Curve) *big.Int {
	return HashScalar(c, big.NewInt(0).SetBytes([]byte("bppe/initial-transcript")))
}

// NewProofTranscript starts the per-proof transcript and immediately absorbs
// the initial challenge and the proof's commitment vector, mirroring the
// original's CT::update_transcript(hsc, e, commitments) call.
func NewProofTranscript(c curve.Curve, e *big.Int, commitments []curve.Element) *Transcript {
	t := New(c, "bppe/transcript")
	t.AbsorbScalar(e)
	t.AbsorbPoints(commitments)
	return t
}
