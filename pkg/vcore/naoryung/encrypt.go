package naoryung

import (
	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group"
)

// Encrypt runs Naor-Yung encryption: encode msg as a vector of w group
// elements, encrypt it under both g1 and g2 with shared randomness r, and
// attach a Fiat-Shamir proof that the same r was used with both
// generators. label is bound into the proof's challenge, so changing it at
// decryption time invalidates the ciphertext.
func Encrypt(pk *PublicKey, label, msg []byte, rs entropy.Source, statDist int) ([]byte, error) {
	els, err := pk.Group.Encode(msg, rs)
	if err != nil {
		return nil, err
	}
	w := len(els)
	ring := pk.Group.Ring()

	pg1 := group.Broadcast(pk.G1, w)
	pg2 := group.Broadcast(pk.G2, w)
	ph := group.Broadcast(pk.H, w)

	r, err := group.RandomRingTuple(ring, rs, statDist, w)
	if err != nil {
		return nil, err
	}
	u1 := group.ExpTuple(pg1, r)
	u2 := group.ExpTuple(pg2, r)
	e := group.MulTuple(group.ExpTuple(ph, r), els)

	s, err := group.RandomRingTuple(ring, rs, statDist, w)
	if err != nil {
		return nil, err
	}
	a1 := group.ExpTuple(pg1, s)
	a2 := group.ExpTuple(pg2, s)

	c, err := challenge(pk.ROH, ring, transcript(label, u1, u2, e, a1, a2))
	if err != nil {
		return nil, err
	}
	d := group.AddRingTuple(group.MulRingTupleScalar(r, c), s)

	ct := bytetree.Node(
		bytetree.IntLeaf(int32(w)),
		group.TupleToByteTree(u1),
		group.TupleToByteTree(u2),
		group.TupleToByteTree(e),
		group.TupleToByteTree(a1),
		group.TupleToByteTree(a2),
		group.RingTupleToByteTree(d),
	)
	return ct.ToBytes(), nil
}
