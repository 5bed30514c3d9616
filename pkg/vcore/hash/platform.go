package hash

import (
	gohash "hash"

	"crypto/sha256"
	"crypto/sha512"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// PlatformAlgo enumerates the supported platform SHA-2 variants.
type PlatformAlgo string

const (
	SHA256 PlatformAlgo = "SHA-256"
	SHA384 PlatformAlgo = "SHA-384"
	SHA512 PlatformAlgo = "SHA-512"
)

func (a PlatformAlgo) new() (gohash.Hash, int, int, bool) {
	switch a {
	case SHA256:
		return sha256.New(), 64, 32, true
	case SHA384:
		return sha512.New384(), 128, 48, true
	case SHA512:
		return sha512.New(), 128, 64, true
	default:
		return nil, 0, 0, false
	}
}

// Platform wraps a system SHA-2 implementation. A fresh underlying digest
// is instantiated on every call to Digest, so concurrent Hash/Digest calls
// never share mutable state.
type Platform struct {
	Algo PlatformAlgo
}

// NewPlatform constructs a Platform hash over algo, or an InternalError if
// algo names an algorithm this runtime does not provide: a
// named-but-unavailable algorithm is a fatal configuration bug, not a
// format problem.
func NewPlatform(algo PlatformAlgo) (*Platform, error) {
	if _, _, _, ok := algo.new(); !ok {
		return nil, &InternalError{Algo: string(algo)}
	}
	return &Platform{Algo: algo}, nil
}

func (p *Platform) blockBytes() int {
	_, block, _, _ := p.Algo.new()
	return block
}

func (p *Platform) outputBytes() int {
	_, _, out, _ := p.Algo.new()
	return out
}

// InputBits implements FixedLengthHash: the algorithm's internal block
// size, which is what a Merkle-Damgard extender consumes per round when
// this hash is reused as its inner function.
func (p *Platform) InputBits() int { return p.blockBytes() * 8 }

// OutputBits implements FixedLengthHash and informs Hashfunction callers of
// the digest size.
func (p *Platform) OutputBits() int { return p.outputBytes() * 8 }

// Compress implements FixedLengthHash: data must be exactly
// InputBits()/8 bytes.
func (p *Platform) Compress(data []byte) ([]byte, error) {
	if len(data) != p.blockBytes() {
		return nil, &FormatError{Cause: errShapeMismatch(p.blockBytes(), len(data))}
	}
	return p.Hash(data)
}

// Hash implements Hashfunction.
func (p *Platform) Hash(parts ...[]byte) ([]byte, error) {
	return runHash(p, parts)
}

// OutputBytes implements Hashfunction.
func (p *Platform) OutputBytes() int { return p.outputBytes() }

// Digest implements Hashfunction with a fresh stdlib hash.Hash per call.
func (p *Platform) Digest() Digest {
	h, _, _, _ := p.Algo.new()
	return &platformDigest{h: h}
}

type platformDigest struct {
	h gohash.Hash
}

func (d *platformDigest) Update(p []byte) { d.h.Write(p) }

func (d *platformDigest) UpdateAt(p []byte, off, length int) { d.h.Write(p[off : off+length]) }

func (d *platformDigest) Sum() ([]byte, error) { return d.h.Sum(nil), nil }

// ClassID implements marshal.Marshaler.
func (p *Platform) ClassID() marshal.ClassID { return ClassIDPlatform }

// ToByteTree implements marshal.Marshaler: Leaf(algo_name_utf8).
func (p *Platform) ToByteTree() *bytetree.ByteTree {
	return bytetree.StringLeaf(string(p.Algo))
}

// UnmarshalPlatform is the registry factory for Platform. It takes no
// recursive dependency on a registry (unlike MerkleDamgard/RandomOracle/
// Pedersen), so it is exported directly rather than via a
// Factory-returning-Factory wrapper.
func UnmarshalPlatform(payload *bytetree.ByteTree, _ marshal.RandomSource, _ int) (any, error) {
	if !payload.IsLeaf() {
		return nil, &marshal.FormatError{Cause: errNotALeaf}
	}
	r := bytetree.NewReader(payload)
	if r.Remaining() > MaxAlgoNameLen {
		return nil, &marshal.FormatError{Cause: errShapeMismatch(MaxAlgoNameLen, r.Remaining())}
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, &marshal.FormatError{Cause: err}
	}
	p, err := NewPlatform(PlatformAlgo(name))
	if err != nil {
		// The name came from the byte-tree, so an unsupported one is a
		// malformed payload rather than a configuration bug.
		return nil, &marshal.FormatError{Cause: err}
	}
	return p, nil
}
