package prg

import (
	"encoding/binary"
	"sync"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

const (
	ClassIDHashCounter marshal.ClassID = "vcore.prg.HashCounter"
	counterBytes                       = 4
)

// HashCounter is the hash-with-counter PRG: state is a fixed-size input
// buffer of MinSeedBytes()+4 bytes holding the seed followed by a 32-bit
// big-endian counter. Each output block is Hash(buffer); the counter is
// incremented after every block.
type HashCounter struct {
	mu sync.Mutex

	h Hashfunction

	seedBytes int // = h.OutputBytes()
	buf       []byte
	counter   uint32
	block     []byte
	blockIdx  int
	seeded    bool
}

// NewHashCounter builds an HC-PRG driven by h. MinSeedBytes equals h's
// output length.
func NewHashCounter(h Hashfunction) *HashCounter {
	seedBytes := h.OutputBytes()
	return &HashCounter{
		h:         h,
		seedBytes: seedBytes,
		buf:       make([]byte, seedBytes+counterBytes),
	}
}

// MinSeedBytes implements PRG.
func (g *HashCounter) MinSeedBytes() int { return g.seedBytes }

// SetSeed implements PRG. The seed is XORed circularly into the first
// MinSeedBytes() bytes of a zeroed buffer (so a seed exactly
// MinSeedBytes long is installed as-is), the counter resets to zero, and the
// current output block is marked fully consumed so the first GetBytes call
// recomputes it.
func (g *HashCounter) SetSeed(seed []byte) error {
	if len(seed) < g.seedBytes {
		return &ValidationError{Cause: errSeedTooShort(g.seedBytes, len(seed))}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.buf[:g.seedBytes] {
		g.buf[i] = 0
	}
	for i, b := range seed {
		g.buf[i%g.seedBytes] ^= b
	}
	g.counter = 0
	g.block = nil
	g.blockIdx = 0
	g.seeded = true
	return nil
}

// GetBytes implements entropy.Source/PRG.
func (g *HashCounter) GetBytes(dest []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.seeded {
		panicUnseeded()
	}
	for len(dest) > 0 {
		if g.block == nil || g.blockIdx == len(g.block) {
			if err := g.refill(); err != nil {
				return err
			}
		}
		n := copy(dest, g.block[g.blockIdx:])
		g.blockIdx += n
		dest = dest[n:]
	}
	return nil
}

func (g *HashCounter) refill() error {
	binary.BigEndian.PutUint32(g.buf[g.seedBytes:], g.counter)
	block, err := g.h.Hash(g.buf)
	if err != nil {
		return err
	}
	g.block = block
	g.blockIdx = 0
	g.counter++
	return nil
}

// ClassID implements marshal.Marshaler.
func (g *HashCounter) ClassID() marshal.ClassID { return ClassIDHashCounter }

// ToByteTree implements marshal.Marshaler: the payload is the marshalized
// inner hash function and nothing else. Seed and counter state are never
// persisted; a reconstructed HashCounter comes back unseeded, the same as
// a freshly constructed one. The inner hash must itself be a
// marshal.Marshaler; ToByteTree panics if it is not, since that is a
// construction-time programmer error, not a wire-format condition.
func (g *HashCounter) ToByteTree() *bytetree.ByteTree {
	m, ok := g.h.(marshal.Marshaler)
	if !ok {
		panic("prg: HashCounter hash function is not marshalable")
	}
	return marshal.Marshal(m)
}

// HashCounterFactory returns the registry factory for HashCounter,
// recursing into reg to reconstruct the inner hash function. The rebuilt
// generator is unseeded.
func HashCounterFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		innerAny, err := reg.Unmarshal(payload, rs, certainty)
		if err != nil {
			return nil, err
		}
		inner, ok := innerAny.(Hashfunction)
		if !ok {
			return nil, &marshal.FormatError{Cause: errNotAHash()}
		}
		return NewHashCounter(inner), nil
	}
}

var _ entropy.Source = (*HashCounter)(nil)
var _ PRG = (*HashCounter)(nil)
