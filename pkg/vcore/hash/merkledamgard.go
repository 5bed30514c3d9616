package hash

import (
	"encoding/binary"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// MerkleDamgard extends a FixedLengthHash to arbitrary-length input. Its
// output length equals the inner function's output length.
type MerkleDamgard struct {
	Inner FixedLengthHash

	blockLen    int // input_byte_offset + input_byte_len
	offset      int // input_byte_offset
	outputBytes int // output_byte_len
}

// NewMerkleDamgard builds the extender over inner.
func NewMerkleDamgard(inner FixedLengthHash) (*MerkleDamgard, error) {
	mBits := inner.InputBits()
	nBits := inner.OutputBits()
	inputByteLen := mBits / 8
	offset := 0
	if mBits%8 != 0 {
		offset = 1
	}
	outputByteLen := (nBits + 7) / 8
	blockLen := offset + inputByteLen
	if blockLen < 8 {
		return nil, &FormatError{Cause: errShapeMismatch(8, blockLen)}
	}
	return &MerkleDamgard{Inner: inner, blockLen: blockLen, offset: offset, outputBytes: outputByteLen}, nil
}

// Hash implements Hashfunction.
func (m *MerkleDamgard) Hash(parts ...[]byte) ([]byte, error) { return runHash(m, parts) }

// OutputBytes implements Hashfunction.
func (m *MerkleDamgard) OutputBytes() int { return m.outputBytes }

// Digest implements Hashfunction with a fresh, independent state per call.
func (m *MerkleDamgard) Digest() Digest {
	d := &mdDigest{md: m, temp: make([]byte, m.blockLen), idx: m.offset}
	return d
}

type mdDigest struct {
	md       *MerkleDamgard
	temp     []byte
	idx      int
	totalLen uint64 // total input bytes fed so far
	err      error
}

func (d *mdDigest) Update(p []byte) { d.UpdateAt(p, 0, len(p)) }

func (d *mdDigest) UpdateAt(p []byte, off, length int) {
	if d.err != nil {
		return
	}
	d.totalLen += uint64(length)
	remaining := p[off : off+length]
	for len(remaining) > 0 {
		space := d.md.blockLen - d.idx
		n := space
		if n > len(remaining) {
			n = len(remaining)
		}
		copy(d.temp[d.idx:d.idx+n], remaining[:n])
		d.idx += n
		remaining = remaining[n:]
		if d.idx == d.md.blockLen {
			if err := d.compressBlock(); err != nil {
				d.err = err
				return
			}
		}
	}
}

// compressBlock runs the inner compression function once over the full
// temp buffer and writes its output back into temp starting at offset,
// continuing the chain.
func (d *mdDigest) compressBlock() error {
	out, err := d.md.Inner.Compress(d.temp)
	if err != nil {
		return err
	}
	copy(d.temp[d.md.offset:d.md.offset+d.md.outputBytes], out)
	d.idx = d.md.offset + d.md.outputBytes
	return nil
}

func (d *mdDigest) Sum() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	blockLen := d.md.blockLen

	if blockLen-d.idx < 8 {
		for i := d.idx; i < blockLen; i++ {
			d.temp[i] = 0
		}
		d.idx = blockLen
		if err := d.compressBlock(); err != nil {
			return nil, err
		}
	}

	for i := d.idx; i < blockLen-8; i++ {
		d.temp[i] = 0
	}
	binary.BigEndian.PutUint64(d.temp[blockLen-8:blockLen], d.totalLen*8)

	return d.md.Inner.Compress(d.temp)
}

// ClassID implements marshal.Marshaler.
func (m *MerkleDamgard) ClassID() marshal.ClassID { return ClassIDMerkleDamgard }

// ToByteTree implements marshal.Marshaler: Node(marshal(inner)).
// inner must itself be a marshal.Marshaler (Platform and
// Pedersen both are); MerkleDamgard panics if it is not, since that is a
// construction-time programmer error, not a wire-format condition.
func (m *MerkleDamgard) ToByteTree() *bytetree.ByteTree {
	innerMarshaler, ok := m.Inner.(marshal.Marshaler)
	if !ok {
		panic("hash: MerkleDamgard inner function is not marshalable")
	}
	return bytetree.Node(marshal.Marshal(innerMarshaler))
}

// MerkleDamgardFactory returns the registry factory for MerkleDamgard,
// recursing into reg to reconstruct the inner hash function.
func MerkleDamgardFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 1 {
			return nil, &marshal.FormatError{Cause: errNotALeaf}
		}
		innerAny, err := reg.Unmarshal(payload.Child(0), rs, certainty)
		if err != nil {
			return nil, err
		}
		inner, ok := innerAny.(FixedLengthHash)
		if !ok {
			return nil, &marshal.FormatError{Cause: errShapeMismatch(0, 0)}
		}
		md, err := NewMerkleDamgard(inner)
		if err != nil {
			return nil, err
		}
		return md, nil
	}
}
