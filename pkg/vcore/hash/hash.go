// Package hash implements vcore's hashing & random-oracle stack:
// fixed-length compression functions, the Merkle-Damgard domain extender, a
// random-oracle construction with arbitrary output length, and the
// incremental Digest abstraction shared by all of them.
package hash

import (
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// Digest is an incremental hash computation: feed it bytes, optionally in
// pieces, then ask for the final output. For every Hashfunction variant,
// digest-fed input must equal the one-shot Hash result for the same bytes;
// each variant's Hash is implemented as Digest().Update(parts...).Sum()
// precisely so the equivalence is structural rather than coincidental.
type Digest interface {
	// Update feeds p into the digest.
	Update(p []byte)
	// UpdateAt feeds p[off:off+length] into the digest.
	UpdateAt(p []byte, off, length int)
	// Sum finalizes and returns the digest output. Sum may be called only
	// once; calling it again has undefined content (callers who need to
	// keep hashing after inspecting an intermediate value should not rely
	// on continuing past Sum).
	Sum() ([]byte, error)
}

// Hashfunction is the arbitrary-length-input hash abstraction: Platform,
// MerkleDamgard, and RandomOracle all implement it. Every
// Hashfunction is also a marshal.Marshaler, since every hash function
// variant is itself persistable.
type Hashfunction interface {
	marshal.Marshaler
	// Hash computes the digest of the concatenation of parts in one shot.
	Hash(parts ...[]byte) ([]byte, error)
	// Digest returns a fresh incremental digest. Implementations must
	// return a new, independent digest object on every call, so concurrent
	// callers never share mutable digest state.
	Digest() Digest
	// OutputBytes is the fixed number of bytes Hash/Digest produce. It is
	// what an HC-PRG consults for its min_seed_bytes.
	OutputBytes() int
}

// FixedLengthHash is the fixed-length compression-function abstraction.
// Pedersen is the only native algebraic instance; a Platform hash also
// qualifies when reused as the inner function of a Merkle-Damgard extender.
type FixedLengthHash interface {
	// InputBits is the exact bit length Compress requires.
	InputBits() int
	// OutputBits is the exact bit length Compress produces.
	OutputBits() int
	// Compress computes the fixed-length compression function over data,
	// which must be exactly InputBits()/8 bytes long.
	Compress(data []byte) ([]byte, error)
}

// runHash is the shared Hash-from-Digest path: a fresh digest, one Update
// per part, one Sum.
func runHash(h Hashfunction, parts [][]byte) ([]byte, error) {
	d := h.Digest()
	for _, p := range parts {
		d.Update(p)
	}
	return d.Sum()
}
