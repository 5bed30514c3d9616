// Package ecgroup is the reference instantiation of the group.Group
// contract over the secp256k1 curve, via
// github.com/btcsuite/btcd/btcec/v2. It is a concrete, testable group for
// exercising the Naor-Yung cryptosystem end-to-end; the message
// encode/decode scheme it implements is a toy suitable for short test
// messages, not a production encoding.
package ecgroup

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// ClassIDGroup is the stable class id for Group.
const ClassIDGroup marshal.ClassID = "vcore.group.ecgroup.Group"

// maxEncodeByte bounds the brute-force discrete-log search in Decode: the
// toy encoding maps one message byte per group element, so the search space
// is exactly 256 candidates.
const maxEncodeByte = 255

// Group implements group.Group over secp256k1.
type Group struct {
	curve *btcec.KoblitzCurve
	ring  *Ring
	byteN int
}

// New builds the secp256k1 reference group.
func New() *Group {
	curve := btcec.S256()
	return &Group{
		curve: curve,
		ring:  &Ring{n: curve.Params().N},
		byteN: (curve.Params().BitSize + 7) / 8,
	}
}

// Generator implements group.Group.
func (g *Group) Generator() group.Element {
	p := g.curve.Params()
	return &Element{g: g, x: p.Gx, y: p.Gy}
}

// Ring implements group.Group.
func (g *Group) Ring() group.Ring { return g.ring }

// ByteLength implements group.Group: 1 (parity prefix) + field byte length.
func (g *Group) ByteLength() int { return 1 + g.byteN }

// Encode implements group.Group with the toy small-message encoding: one
// group element per message byte, el_i = generator^(byte_i). rs is accepted
// for interface compliance but unused; this scheme needs no padding.
func (g *Group) Encode(msg []byte, _ entropy.Source) ([]group.Element, error) {
	gen := g.Generator()
	els := make([]group.Element, len(msg))
	for i, b := range msg {
		r := &scalarElement{n: g.ring.n, v: big.NewInt(int64(b))}
		els[i] = gen.Exp(r)
	}
	return els, nil
}

// Decode implements group.Group by brute-forcing each element's discrete
// log in [0, 255] against the generator, tractable only because Encode
// never emits an exponent above maxEncodeByte.
func (g *Group) Decode(els []group.Element) ([]byte, error) {
	if len(els) == 0 {
		return []byte{}, nil
	}
	gen := g.Generator().(*Element)
	out := make([]byte, len(els))
	for i, e := range els {
		ep, ok := e.(*Element)
		if !ok {
			return nil, &group.FormatError{Cause: errWrongElementType()}
		}
		b, ok := discreteLogByte(g, gen, ep)
		if !ok {
			return nil, &group.ValidationError{Cause: errNotEncodable()}
		}
		out[i] = b
	}
	return out, nil
}

func discreteLogByte(g *Group, gen, target *Element) (byte, bool) {
	if target.x == nil && target.y == nil {
		return 0, true // identity corresponds to byte 0 (generator^0)
	}
	acc := &Element{g: g, x: nil, y: nil} // identity
	for i := 0; i <= maxEncodeByte; i++ {
		if i > 0 {
			acc = acc.Mul(gen).(*Element)
		}
		if acc.equal(target) {
			return byte(i), true
		}
	}
	return 0, false
}

// ElementFromByteTree implements group.Group.
func (g *Group) ElementFromByteTree(t *bytetree.ByteTree) (group.Element, error) {
	if !t.IsLeaf() {
		return nil, &group.FormatError{Cause: errNotALeaf()}
	}
	b := t.LeafBytes()
	if len(b) != g.ByteLength() {
		return nil, &group.FormatError{Cause: errWrongLength(g.ByteLength(), len(b))}
	}
	if isIdentityEncoding(b) {
		return &Element{g: g, x: nil, y: nil}, nil
	}
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, &group.FormatError{Cause: err}
	}
	return &Element{g: g, x: pub.X(), y: pub.Y()}, nil
}

func isIdentityEncoding(b []byte) bool {
	if b[0] != 0x00 {
		return false
	}
	for _, v := range b[1:] {
		if v != 0 {
			return false
		}
	}
	return true
}

// ClassID implements marshal.Marshaler.
func (g *Group) ClassID() marshal.ClassID { return ClassIDGroup }

// ToByteTree implements marshal.Marshaler. secp256k1 is a singleton
// parameter set, so the payload is an empty leaf; ecgroup.Factory always
// reconstructs the same curve.
func (g *Group) ToByteTree() *bytetree.ByteTree { return bytetree.Leaf(nil) }

// Factory is the marshal.Factory for Group.
func Factory(_ *bytetree.ByteTree, _ marshal.RandomSource, _ int) (any, error) {
	return New(), nil
}

var _ group.Group = (*Group)(nil)
