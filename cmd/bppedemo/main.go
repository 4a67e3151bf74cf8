// Command bppedemo exercises the range-proof engine end to end: it commits
// to a small batch of values, proves their range, and verifies the result,
// the same shape of demo the teacher's root main.go walked through for its
// vote-casting flow.
package main

import (
	"log"
	"math/big"

	"github.com/beezynetwork/bppe-go/curve"
	"github.com/beezynetwork/bppe-go/rangeproof"
)

func main() {
	c := curve.Ristretto255()
	params := rangeproof.NewParams(c, 64, 16)

	values := rangeproof.ScalarVector{
		big.NewInt(0),
		big.NewInt(42),
		big.NewInt(1_000_000),
		new(big.Int).Lsh(big.NewInt(1), 63),
	}
	masks1 := make(rangeproof.ScalarVector, len(values))
	masks2 := make(rangeproof.ScalarVector, len(values))
	for i := range values {
		masks1[i] = curve.RandomScalar(c)
		masks2[i] = curve.RandomScalar(c)
	}

	log.Println("proving range membership for", len(values), "values")
	proof, commitments, code := rangeproof.Prove(params, values, masks1, masks2)
	if code != rangeproof.ErrNone {
		log.Fatalf("prove failed: error code %d", code)
	}

	wire, err := proof.MarshalBinary()
	if err != nil {
		log.Fatalf("marshal failed: %v", err)
	}
	log.Println("proof encoded to", len(wire), "bytes")

	decoded, code := rangeproof.UnmarshalProof(c, wire)
	if code != rangeproof.ErrNone {
		log.Fatalf("unmarshal failed: error code %d", code)
	}

	ok, _ := rangeproof.Verify(params, []*rangeproof.Proof{decoded}, [][]rangeproof.Commitment{commitments})
	log.Println("proof verifies:", ok)
}
