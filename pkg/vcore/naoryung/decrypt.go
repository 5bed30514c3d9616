package naoryung

import (
	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/group"
)

// maxCiphertextWidth bounds the declared tuple width w before any
// allocation proportional to it, guarding against a hostile ciphertext
// claiming an enormous width to force unbounded work.
const maxCiphertextWidth = 1 << 20

// Decrypt runs Naor-Yung decryption: parse ct, recompute the
// Fiat-Shamir challenge, verify the proof of equal discrete logs, and only
// then recover the plaintext. Every failure mode (malformed bytes, wrong
// label, a flipped proof response, an unparseable group element) collapses
// into the single (nil, false) return: the caller cannot distinguish among
// them, which is a cryptographic requirement to avoid a decryption-oracle
// side channel.
//
// An empty ciphertext decrypts to an empty plaintext by convention.
func Decrypt(sk *SecretKey, label, ct []byte) ([]byte, bool) {
	if len(ct) == 0 {
		return []byte{}, true
	}

	tree, err := bytetree.FromBytes(ct)
	if err != nil {
		return nil, false
	}
	if !tree.IsNode() || tree.NumChildren() != 7 {
		return nil, false
	}

	wReader := bytetree.NewReader(tree.Child(0))
	w32, err := wReader.ReadInt()
	if err != nil || w32 < 0 || int(w32) > maxCiphertextWidth {
		return nil, false
	}
	w := int(w32)

	g := sk.Group
	ring := g.Ring()

	u1, err := group.TupleFromByteTree(g, tree.Child(1), w)
	if err != nil {
		return nil, false
	}
	u2, err := group.TupleFromByteTree(g, tree.Child(2), w)
	if err != nil {
		return nil, false
	}
	e, err := group.TupleFromByteTree(g, tree.Child(3), w)
	if err != nil {
		return nil, false
	}
	a1, err := group.TupleFromByteTree(g, tree.Child(4), w)
	if err != nil {
		return nil, false
	}
	a2, err := group.TupleFromByteTree(g, tree.Child(5), w)
	if err != nil {
		return nil, false
	}
	d, err := group.RingTupleFromByteTree(ring, tree.Child(6), w)
	if err != nil {
		return nil, false
	}

	c, err := challenge(sk.ROH, ring, transcript(label, u1, u2, e, a1, a2))
	if err != nil {
		return nil, false
	}

	pg1 := group.Broadcast(sk.G1, w)
	pg2 := group.Broadcast(sk.G2, w)

	ok := verifyProof(pg1, pg2, u1, u2, a1, a2, d, c)
	if !ok {
		return nil, false
	}

	negZ := sk.Z.Neg()
	m := make([]group.Element, w)
	for i := 0; i < w; i++ {
		m[i] = e[i].Mul(u1[i].Exp(negZ))
	}

	msg, err := g.Decode(m)
	if err != nil {
		return nil, false
	}
	return msg, true
}

// verifyProof checks u1^c * a1 == pg1^d and u2^c * a2 == pg2^d
// componentwise.
func verifyProof(pg1, pg2, u1, u2, a1, a2 []group.Element, d []group.RingElement, c group.RingElement) bool {
	w := len(pg1)
	cTuple := make([]group.RingElement, w)
	for i := range cTuple {
		cTuple[i] = c
	}

	lhs1 := group.MulTuple(group.ExpTuple(u1, cTuple), a1)
	rhs1 := group.ExpTuple(pg1, d)
	if !tuplesEqual(lhs1, rhs1) {
		return false
	}

	lhs2 := group.MulTuple(group.ExpTuple(u2, cTuple), a2)
	rhs2 := group.ExpTuple(pg2, d)
	return tuplesEqual(lhs2, rhs2)
}
