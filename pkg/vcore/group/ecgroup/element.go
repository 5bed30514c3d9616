package ecgroup

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/group"
)

// Element is a secp256k1 point, with (nil, nil) representing the group
// identity (the point at infinity).
type Element struct {
	g    *Group
	x, y *big.Int
}

func (e *Element) isIdentity() bool { return e.x == nil && e.y == nil }

// Exp implements group.Element.
func (e *Element) Exp(r group.RingElement) group.Element {
	se := r.(*scalarElement)
	if e.isIdentity() || se.v.Sign() == 0 {
		return &Element{g: e.g, x: nil, y: nil}
	}
	x, y := e.g.curve.ScalarMult(e.x, e.y, se.v.Bytes())
	return &Element{g: e.g, x: x, y: y}
}

// Mul implements group.Element as the elliptic-curve group operation.
func (e *Element) Mul(other group.Element) group.Element {
	o := other.(*Element)
	if e.isIdentity() {
		return o
	}
	if o.isIdentity() {
		return e
	}
	x, y := e.g.curve.Add(e.x, e.y, o.x, o.y)
	return &Element{g: e.g, x: x, y: y}
}

func (e *Element) equal(o *Element) bool {
	if e.isIdentity() || o.isIdentity() {
		return e.isIdentity() == o.isIdentity()
	}
	return e.x.Cmp(o.x) == 0 && e.y.Cmp(o.y) == 0
}

// ToByteTree implements group.Element as a compressed-point leaf; the
// identity is encoded as the all-zero byte string (never a valid
// compressed point encoding for secp256k1, so it cannot collide).
func (e *Element) ToByteTree() *bytetree.ByteTree {
	if e.isIdentity() {
		return bytetree.Leaf(make([]byte, e.g.ByteLength()))
	}
	pub := btcec.NewPublicKey(fieldValFromBig(e.x), fieldValFromBig(e.y))
	return bytetree.Leaf(pub.SerializeCompressed())
}

func fieldValFromBig(n *big.Int) *btcec.FieldVal {
	var f btcec.FieldVal
	f.SetByteSlice(n.Bytes())
	return &f
}
