package hash

import (
	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/group"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// MaxPedersenWidth caps the number of generators a Pedersen hash may carry.
const MaxPedersenWidth = 10

// Pedersen is the algebraic fixed-length hash: input length is
// k * encodeLen(field) bytes, output length is byteLen(group) bytes.
// hash(bytes) parses bytes as k field elements and returns the group
// encoding of prod(g_i^e_i).
type Pedersen struct {
	Group      group.Group
	Generators []group.Element

	encodeLen int
}

// NewPedersen builds a Pedersen hash over the given group and generators.
// len(generators) must be in [1, MaxPedersenWidth].
func NewPedersen(g group.Group, generators []group.Element) (*Pedersen, error) {
	if len(generators) == 0 || len(generators) > MaxPedersenWidth {
		return nil, &FormatError{Cause: errShapeMismatch(1, len(generators))}
	}
	gens := make([]group.Element, len(generators))
	copy(gens, generators)
	return &Pedersen{Group: g, Generators: gens, encodeLen: g.Ring().EncodeLength()}, nil
}

// InputBits implements FixedLengthHash.
func (p *Pedersen) InputBits() int { return 8 * len(p.Generators) * p.encodeLen }

// OutputBits implements FixedLengthHash.
func (p *Pedersen) OutputBits() int { return 8 * p.Group.ByteLength() }

// Compress implements FixedLengthHash: parse data as k big-endian field
// elements of encodeLen bytes each, reduce each into the field, and compute
// the product of g_i^e_i, encoded via the group's own byte encoding.
func (p *Pedersen) Compress(data []byte) ([]byte, error) {
	want := p.InputBits() / 8
	if len(data) != want {
		return nil, &FormatError{Cause: errShapeMismatch(want, len(data))}
	}
	ring := p.Group.Ring()
	var acc group.Element
	for i, g := range p.Generators {
		chunk := data[i*p.encodeLen : (i+1)*p.encodeLen]
		e, err := ring.ToElement(chunk)
		if err != nil {
			return nil, &FormatError{Cause: err}
		}
		term := g.Exp(e)
		if acc == nil {
			acc = term
		} else {
			acc = acc.Mul(term)
		}
	}
	out := acc.ToByteTree()
	if !out.IsLeaf() {
		return nil, &InternalError{Algo: "pedersen: group element encoding is not a leaf"}
	}
	return out.LeafBytes(), nil
}

// Hash implements Hashfunction.
func (p *Pedersen) Hash(parts ...[]byte) ([]byte, error) { return runHash(p, parts) }

// OutputBytes implements Hashfunction.
func (p *Pedersen) OutputBytes() int { return p.Group.ByteLength() }

// Digest implements Hashfunction. Pedersen is a fixed-length primitive, so
// the digest simply buffers input and rejects overflow at Sum time, same as
// any FixedLengthHash reused incrementally.
func (p *Pedersen) Digest() Digest {
	return &pedersenDigest{p: p}
}

type pedersenDigest struct {
	p   *Pedersen
	buf []byte
}

func (d *pedersenDigest) Update(p []byte) { d.buf = append(d.buf, p...) }

func (d *pedersenDigest) UpdateAt(p []byte, off, length int) {
	d.buf = append(d.buf, p[off:off+length]...)
}

func (d *pedersenDigest) Sum() ([]byte, error) { return d.p.Compress(d.buf) }

// ClassID implements marshal.Marshaler.
func (p *Pedersen) ClassID() marshal.ClassID { return ClassIDPedersen }

// ToByteTree implements marshal.Marshaler: Node(marshal(group), generators_byte_tree).
func (p *Pedersen) ToByteTree() *bytetree.ByteTree {
	groupMarshaler, ok := p.Group.(marshal.Marshaler)
	if !ok {
		panic("hash: Pedersen group is not marshalable")
	}
	gens := make([]*bytetree.ByteTree, len(p.Generators))
	for i, g := range p.Generators {
		gens[i] = g.ToByteTree()
	}
	return bytetree.Node(marshal.Marshal(groupMarshaler), bytetree.Node(gens...))
}

// PedersenFactory returns the registry factory for Pedersen.
func PedersenFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 2 {
			return nil, &marshal.FormatError{Cause: errNotALeaf}
		}
		groupAny, err := reg.Unmarshal(payload.Child(0), rs, certainty)
		if err != nil {
			return nil, err
		}
		g, ok := groupAny.(group.Group)
		if !ok {
			return nil, &marshal.FormatError{Cause: errShapeMismatch(0, 0)}
		}
		gensTree := payload.Child(1)
		if !gensTree.IsNode() {
			return nil, &marshal.FormatError{Cause: errNotALeaf}
		}
		n := gensTree.NumChildren()
		if n == 0 || n > MaxPedersenWidth {
			return nil, &marshal.FormatError{Cause: errShapeMismatch(1, n)}
		}
		gens := make([]group.Element, n)
		for i := 0; i < n; i++ {
			e, err := g.ElementFromByteTree(gensTree.Child(i))
			if err != nil {
				return nil, err
			}
			gens[i] = e
		}
		return NewPedersen(g, gens)
	}
}
