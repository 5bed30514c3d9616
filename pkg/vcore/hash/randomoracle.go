package hash

import (
	"encoding/binary"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
	"github.com/sigilvote/vcore/pkg/vcore/prg"
)

// RandomOracle is the variable-output-length construction: hash(x) prepends
// a 4-byte big-endian out_bits prefix to x, runs it through Inner, and seeds
// an HC-PRG with the resulting digest to expand to out_bits of pseudo-random
// output (masking the high bits of the first byte when out_bits is not
// byte-aligned). Domain separation by the length prefix gives independent
// oracles per requested output length.
type RandomOracle struct {
	Inner   Hashfunction
	OutBits int

	outLenBytes int
}

// NewRandomOracle builds a RandomOracle over inner with the given output
// length in bits.
func NewRandomOracle(inner Hashfunction, outBits int) (*RandomOracle, error) {
	if outBits <= 0 {
		return nil, &FormatError{Cause: errShapeMismatch(1, outBits)}
	}
	return &RandomOracle{Inner: inner, OutBits: outBits, outLenBytes: (outBits + 7) / 8}, nil
}

// Hash implements Hashfunction.
func (ro *RandomOracle) Hash(parts ...[]byte) ([]byte, error) { return runHash(ro, parts) }

// OutputBytes implements Hashfunction.
func (ro *RandomOracle) OutputBytes() int { return ro.outLenBytes }

// Digest implements Hashfunction. The 4-byte out_bits prefix is fed into the
// inner digest immediately, before any caller Update, so the incremental and
// one-shot forms are structurally identical.
func (ro *RandomOracle) Digest() Digest {
	inner := ro.Inner.Digest()
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(ro.OutBits))
	inner.Update(prefix[:])
	return &roDigest{ro: ro, inner: inner}
}

type roDigest struct {
	ro    *RandomOracle
	inner Digest
}

func (d *roDigest) Update(p []byte) { d.inner.Update(p) }
func (d *roDigest) UpdateAt(p []byte, off, length int) { d.inner.UpdateAt(p, off, length) }

func (d *roDigest) Sum() ([]byte, error) {
	seed, err := d.inner.Sum()
	if err != nil {
		return nil, err
	}
	hc := prg.NewHashCounter(d.ro.Inner)
	if err := hc.SetSeed(seed); err != nil {
		return nil, &InternalError{Algo: "random-oracle seed expansion"}
	}
	out := make([]byte, d.ro.outLenBytes)
	if err := hc.GetBytes(out); err != nil {
		return nil, err
	}
	maskHighBits(out, d.ro.OutBits)
	return out, nil
}

// ClassID implements marshal.Marshaler.
func (ro *RandomOracle) ClassID() marshal.ClassID { return ClassIDRandomOracle }

// ToByteTree implements marshal.Marshaler: Node(marshal(inner), int_leaf(out_bits)).
func (ro *RandomOracle) ToByteTree() *bytetree.ByteTree {
	innerMarshaler, ok := ro.Inner.(marshal.Marshaler)
	if !ok {
		panic("hash: RandomOracle inner function is not marshalable")
	}
	return bytetree.Node(marshal.Marshal(innerMarshaler), bytetree.IntLeaf(int32(ro.OutBits)))
}

// RandomOracleFactory returns the registry factory for RandomOracle.
func RandomOracleFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 2 {
			return nil, &marshal.FormatError{Cause: errNotALeaf}
		}
		innerAny, err := reg.Unmarshal(payload.Child(0), rs, certainty)
		if err != nil {
			return nil, err
		}
		inner, ok := innerAny.(Hashfunction)
		if !ok {
			return nil, &marshal.FormatError{Cause: errShapeMismatch(0, 0)}
		}
		r := bytetree.NewReader(payload.Child(1))
		outBits, err := r.ReadInt()
		if err != nil {
			return nil, &marshal.FormatError{Cause: err}
		}
		ro, err := NewRandomOracle(inner, int(outBits))
		if err != nil {
			return nil, err
		}
		return ro, nil
	}
}
