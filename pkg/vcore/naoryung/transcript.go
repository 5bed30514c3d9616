package naoryung

import (
	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/group"
)

// transcript builds the canonical byte-tree the Fiat-Shamir challenge is
// hashed from: Node(label, u1, u2, e, a1, a2). The field order is
// normative: any re-implementation must reproduce it bit-for-bit to agree
// on the challenge.
func transcript(label []byte, u1, u2, e, a1, a2 []group.Element) *bytetree.ByteTree {
	return bytetree.Node(
		bytetree.Leaf(label),
		group.TupleToByteTree(u1),
		group.TupleToByteTree(u2),
		group.TupleToByteTree(e),
		group.TupleToByteTree(a1),
		group.TupleToByteTree(a2),
	)
}

// challenge computes c = RO(transcript), reduced into the group's exponent
// ring. roh must already be configured to emit secpro bits of output (the
// caller's KeyGenerator/PublicKey wiring is responsible for that); the
// high-bit mask for a non-byte-aligned secpro is applied inside the random
// oracle itself, before integer conversion.
func challenge(roh interface {
	Hash(parts ...[]byte) ([]byte, error)
}, ring group.Ring, t *bytetree.ByteTree) (group.RingElement, error) {
	digest, err := roh.Hash(t.ToBytes())
	if err != nil {
		return nil, err
	}
	return ring.ToElement(digest)
}

// elementsEqual reports whether a and b serialize to identical byte-tree
// encodings, the generic equality test available for any group.Element
// without requiring the contract to expose an Equal method.
func elementsEqual(a, b group.Element) bool {
	return a.ToByteTree().Equal(b.ToByteTree())
}

func tuplesEqual(a, b []group.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !elementsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
