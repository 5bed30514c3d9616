// Package group declares the abstract group/ring/element contract the
// Naor-Yung cryptosystem (package naoryung) is built against. The concrete
// arithmetic is supplied externally; package ecgroup is the reference
// instantiation over secp256k1.
package group

import (
	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// Element is a single group element.
type Element interface {
	// Exp computes this element raised to the given ring (exponent) element.
	Exp(r RingElement) Element
	// Mul computes the group operation of this element with other.
	Mul(other Element) Element
	// ToByteTree serializes the element per the owning group's encoding.
	ToByteTree() *bytetree.ByteTree
}

// RingElement is an element of a Group's exponent ring.
type RingElement interface {
	Add(other RingElement) RingElement
	Mul(other RingElement) RingElement
	Neg() RingElement
	ToByteTree() *bytetree.ByteTree
}

// Ring is a Group's exponent ring, also reused as the field for
// Pedersen's message encoding: EncodeLength is the fixed chunk width, and
// ToElement reduces an integer's big-endian encoding into the ring.
type Ring interface {
	// RandomElement draws a uniform element with statistical distance at
	// most 2^-statDist from uniform, using rs as the source of randomness.
	RandomElement(rs entropy.Source, statDist int) (RingElement, error)
	// ToElement reduces a big-endian byte string into the ring.
	ToElement(b []byte) (RingElement, error)
	// ToElementFromByteTree reconstructs a ring element from its wire form.
	ToElementFromByteTree(t *bytetree.ByteTree) (RingElement, error)
	// EncodeLength is the fixed byte width ToElement expects (field.encode_length).
	EncodeLength() int
}

// Group is the abstract prime-order group contract.
// Every Group is also a marshal.Marshaler so it can be embedded in key and
// ciphertext byte-tree payloads.
type Group interface {
	marshal.Marshaler

	// Generator returns the group's canonical generator.
	Generator() Element
	// Ring returns the group's exponent ring.
	Ring() Ring
	// ByteLength is the fixed encoded length of a single group element.
	ByteLength() int
	// Encode maps an arbitrary byte string to a variable-length vector of
	// group elements, using rs for any randomized padding the encoding
	// needs. The vector length (message capacity per element) is entirely
	// delegated to the concrete group.
	Encode(msg []byte, rs entropy.Source) ([]Element, error)
	// Decode inverts Encode.
	Decode(els []Element) ([]byte, error)
	// ElementFromByteTree reconstructs a group element from its wire form.
	ElementFromByteTree(t *bytetree.ByteTree) (Element, error)
}

// Broadcast builds the length-w tuple whose every component is e.
func Broadcast(e Element, w int) []Element {
	out := make([]Element, w)
	for i := range out {
		out[i] = e
	}
	return out
}

// ExpTuple computes the elementwise exponentiation of base by exps,
// base[i].Exp(exps[i]) for each i. len(base) must equal len(exps).
func ExpTuple(base []Element, exps []RingElement) []Element {
	out := make([]Element, len(base))
	for i := range base {
		out[i] = base[i].Exp(exps[i])
	}
	return out
}

// MulTuple computes the elementwise group operation of a and b.
func MulTuple(a, b []Element) []Element {
	out := make([]Element, len(a))
	for i := range a {
		out[i] = a[i].Mul(b[i])
	}
	return out
}

// MulTupleScalar multiplies every component of a by the single element s.
func MulTupleScalar(a []Element, s Element) []Element {
	out := make([]Element, len(a))
	for i := range a {
		out[i] = a[i].Mul(s)
	}
	return out
}

// AddRingTuple computes the elementwise ring addition of a and b.
func AddRingTuple(a, b []RingElement) []RingElement {
	out := make([]RingElement, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

// MulRingTupleScalar multiplies every ring element in a by the single ring
// element c (used for r*c in the Naor-Yung proof response).
func MulRingTupleScalar(a []RingElement, c RingElement) []RingElement {
	out := make([]RingElement, len(a))
	for i := range a {
		out[i] = a[i].Mul(c)
	}
	return out
}

// RandomRingTuple draws w independent uniform ring elements.
func RandomRingTuple(r Ring, rs entropy.Source, statDist, w int) ([]RingElement, error) {
	out := make([]RingElement, w)
	for i := range out {
		e, err := r.RandomElement(rs, statDist)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// TupleToByteTree serializes a tuple of elements as an ordered node of their
// individual byte-tree encodings.
func TupleToByteTree(els []Element) *bytetree.ByteTree {
	children := make([]*bytetree.ByteTree, len(els))
	for i, e := range els {
		children[i] = e.ToByteTree()
	}
	return bytetree.Node(children...)
}

// RingTupleToByteTree serializes a tuple of ring elements the same way.
func RingTupleToByteTree(res []RingElement) *bytetree.ByteTree {
	children := make([]*bytetree.ByteTree, len(res))
	for i, e := range res {
		children[i] = e.ToByteTree()
	}
	return bytetree.Node(children...)
}

// TupleFromByteTree parses a node of w element encodings back into a tuple.
func TupleFromByteTree(g Group, t *bytetree.ByteTree, w int) ([]Element, error) {
	if !t.IsNode() || t.NumChildren() != w {
		return nil, &marshal.FormatError{Cause: errTupleShape(w, t)}
	}
	out := make([]Element, w)
	for i := 0; i < w; i++ {
		e, err := g.ElementFromByteTree(t.Child(i))
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// RingTupleFromByteTree parses a node of w ring-element encodings.
func RingTupleFromByteTree(r Ring, t *bytetree.ByteTree, w int) ([]RingElement, error) {
	if !t.IsNode() || t.NumChildren() != w {
		return nil, &marshal.FormatError{Cause: errTupleShape(w, t)}
	}
	out := make([]RingElement, w)
	for i := 0; i < w; i++ {
		e, err := r.ToElementFromByteTree(t.Child(i))
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
