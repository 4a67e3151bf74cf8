// Package curve defines the abstract prime-order group ("curve trait") that
// the range-proof engine is parameterised over. The engine never reaches
// past this interface into a concrete curve implementation; see
// ristretto255.go for the one backend this module ships.
package curve

import (
	"encoding"
	"math/big"
)

// Element is a member of a prime-order group. All mutating methods set the
// receiver to the result and return it, allowing chained, allocation-light
// arithmetic in the hot loops of the range-proof engine.
type Element interface {
	// Add sets the receiver to X + Y and returns it.
	Add(X, Y Element) Element
	// Subtract sets the receiver to X - Y and returns it.
	Subtract(X, Y Element) Element
	// Negate sets the receiver to -X and returns it.
	Negate(X Element) Element
	// Scale sets the receiver to s*X and returns it.
	Scale(X Element, s *big.Int) Element
	// BaseScale sets the receiver to s*G, where G is the curve's generator.
	BaseScale(s *big.Int) Element
	// Set sets the receiver to X and returns it.
	Set(X Element) Element
	// IsEqual reports whether the receiver and X denote the same element.
	IsEqual(X Element) bool
	// IsIdentity reports whether the receiver is the group's identity.
	IsIdentity() bool
	// String returns a debug representation; not used for hashing.
	String() string

	encoding.BinaryMarshaler
	// UnmarshalBinary decompresses a wire-format point. It rejects
	// encodings that do not correspond to a valid element of the
	// prime-order subgroup.
	encoding.BinaryUnmarshaler
}

// Curve is a prime-order group together with the operations the range-proof
// engine needs from it: element construction, a deterministic hash-to-curve
// for the generator table (C3), and the field/group orders scalars are
// reduced against.
type Curve interface {
	// Name identifies the backing group, e.g. "ristretto255".
	Name() string

	// Element allocates a zero-valued element.
	Element() Element
	// Generator returns the group's distinguished generator G.
	Generator() Element
	// Identity returns the group's identity element.
	Identity() Element
	// Random returns a uniformly sampled element.
	Random() Element

	// HashToElement deterministically maps a domain-separation tag to a
	// group element with unknown discrete log, for generator-table and
	// fixed-generator derivation (C3).
	HashToElement(tag string) Element

	// Order returns the prime order of the group (the scalar field
	// modulus ℓ that curve.Scalar values are reduced against).
	Order() *big.Int
	// FieldOrder returns the prime order of the field the curve is
	// defined over.
	FieldOrder() *big.Int
}
