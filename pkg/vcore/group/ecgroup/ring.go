package ecgroup

import (
	"math/big"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/group"
)

// Ring is secp256k1's exponent ring, Z_n where n is the curve order.
type Ring struct {
	n *big.Int
}

// RandomElement implements group.Ring by rejection-free oversampling:
// draw ceil((bitlen(n)+statDist)/8) bytes and reduce mod n, giving
// statistical distance at most 2^-statDist from uniform.
func (r *Ring) RandomElement(rs entropy.Source, statDist int) (group.RingElement, error) {
	nBytes := (r.n.BitLen() + statDist + 7) / 8
	buf := make([]byte, nBytes)
	if err := rs.GetBytes(buf); err != nil {
		return nil, &group.ValidationError{Cause: err}
	}
	v := new(big.Int).SetBytes(buf)
	v.Mod(v, r.n)
	return &scalarElement{n: r.n, v: v}, nil
}

// ToElement implements group.Ring/field.to_element.
func (r *Ring) ToElement(b []byte) (group.RingElement, error) {
	v := new(big.Int).SetBytes(b)
	v.Mod(v, r.n)
	return &scalarElement{n: r.n, v: v}, nil
}

// ToElementFromByteTree implements group.Ring.
func (r *Ring) ToElementFromByteTree(t *bytetree.ByteTree) (group.RingElement, error) {
	if !t.IsLeaf() {
		return nil, &group.FormatError{Cause: errNotALeaf()}
	}
	return r.ToElement(t.LeafBytes())
}

// EncodeLength implements group.Ring/field.encode_length: the full byte
// width of the scalar field.
func (r *Ring) EncodeLength() int { return (r.n.BitLen() + 7) / 8 }

type scalarElement struct {
	n *big.Int
	v *big.Int
}

func (s *scalarElement) Add(other group.RingElement) group.RingElement {
	o := other.(*scalarElement)
	v := new(big.Int).Add(s.v, o.v)
	v.Mod(v, s.n)
	return &scalarElement{n: s.n, v: v}
}

func (s *scalarElement) Mul(other group.RingElement) group.RingElement {
	o := other.(*scalarElement)
	v := new(big.Int).Mul(s.v, o.v)
	v.Mod(v, s.n)
	return &scalarElement{n: s.n, v: v}
}

func (s *scalarElement) Neg() group.RingElement {
	v := new(big.Int).Neg(s.v)
	v.Mod(v, s.n)
	return &scalarElement{n: s.n, v: v}
}

func (s *scalarElement) ToByteTree() *bytetree.ByteTree {
	width := (s.n.BitLen() + 7) / 8
	b := make([]byte, width)
	vb := s.v.Bytes()
	copy(b[width-len(vb):], vb)
	return bytetree.Leaf(b)
}

var _ group.Ring = (*Ring)(nil)
var _ group.RingElement = (*scalarElement)(nil)
