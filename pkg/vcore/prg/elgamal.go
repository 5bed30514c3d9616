package prg

import (
	"math/big"
	"runtime"
	"sync"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/entropy"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
)

// ClassIDElGamal is the stable class id for ElGamal.
const ClassIDElGamal marshal.ClassID = "vcore.prg.ElGamal"

// MillerRabinRounds is the default witness count for the safe-prime check
// at construction, bounding its false-accept probability at 4^-40.
const MillerRabinRounds = 40

// MaxModulusBytes bounds the encoded modulus leaf a factory will accept
// (50 KiB). This is checked before the expensive Miller-Rabin safe-prime
// check ever runs, so an oversized modulus fails cheaply.
const MaxModulusBytes = 50 * 1024

// fixedBaseTable is a per-generator fixed-base exponentiation table. vcore
// has no windowed-exponentiation table implementation in its dependency
// set, so the "table" is simply the cached base value; Free releases it and
// makes reuse-after-free impossible.
type fixedBaseTable struct {
	base *big.Int
}

func (t *fixedBaseTable) expMod(exp, p *big.Int) *big.Int {
	return new(big.Int).Exp(t.base, exp, p)
}

func (t *fixedBaseTable) free() { t.base = nil }

// ElGamal is a provably-secure DDH-based PRG over a safe-prime group of
// squares. Construction parameters are the modulus p, width k >= 2, and
// the statistical distance parameter.
type ElGamal struct {
	mu sync.Mutex

	p, q     *big.Int
	width    int
	statDist int
	chunkLen int // ceil((bitlen(p)+statDist)/8)
	outLen   int // bitlen(p)/8 - ceil(statDist/8)

	seeded bool
	r      *big.Int
	tables []*fixedBaseTable
	outbuf []byte
}

// NewElGamal validates p as a safe prime (via an HC-PRG-driven Miller-Rabin
// check seeded from checkRS) and constructs an unseeded EG-PRG instance.
func NewElGamal(p *big.Int, width, statDist int, checkRS entropy.Source) (*ElGamal, error) {
	return newElGamalRounds(p, width, statDist, checkRS, MillerRabinRounds)
}

func newElGamalRounds(p *big.Int, width, statDist int, checkRS entropy.Source, rounds int) (*ElGamal, error) {
	if width < 2 {
		return nil, &ValidationError{Cause: errWidthTooSmall(width)}
	}
	ok, err := isSafePrime(p, checkRS, rounds)
	if err != nil {
		return nil, &ValidationError{Cause: err}
	}
	if !ok {
		return nil, &ValidationError{Cause: errNotSafePrime()}
	}
	return newElGamalUnchecked(p, width, statDist), nil
}

// newElGamalUnchecked skips the safe-prime check, for the k = 2 bootstrap
// instance of setSeedBootstrapLocked, whose modulus was already validated by
// the outer instance's own NewElGamal call.
func newElGamalUnchecked(p *big.Int, width, statDist int) *ElGamal {
	q := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	chunkLen := (p.BitLen() + statDist + 7) / 8
	outLen := p.BitLen()/8 - (statDist+7)/8

	e := &ElGamal{p: p, q: q, width: width, statDist: statDist, chunkLen: chunkLen, outLen: outLen}
	runtime.SetFinalizer(e, (*ElGamal).Free)
	return e
}

// MinSeedBytes implements PRG: one exponent chunk plus two generator
// chunks. The length is the same regardless of width, since a
// width > 2 instance always bootstraps through a width-2 path.
func (e *ElGamal) MinSeedBytes() int { return e.chunkLen * 3 }

// SetSeed implements PRG.
func (e *ElGamal) SetSeed(seed []byte) error {
	if len(seed) < e.MinSeedBytes() {
		return &ValidationError{Cause: errSeedTooShort(e.MinSeedBytes(), len(seed))}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.freeTablesLocked()

	if e.width == 2 {
		return e.setSeedWidth2Locked(seed)
	}
	return e.setSeedBootstrapLocked(seed)
}

func (e *ElGamal) setSeedWidth2Locked(seed []byte) error {
	r := reduceChunk(seed[0:e.chunkLen], e.p)
	g0 := reduceChunk(seed[e.chunkLen:2*e.chunkLen], e.p)
	g1 := reduceChunk(seed[2*e.chunkLen:3*e.chunkLen], e.p)

	e.r = r
	e.tables = []*fixedBaseTable{{base: g0}, {base: g1}}
	e.outbuf = nil
	e.seeded = true
	return nil
}

// setSeedBootstrapLocked handles widths above 2: a width-2 helper instance
// stretches the user seed to draw r and k candidate generators, each
// squared to land in the group of squares, before its tables are released.
func (e *ElGamal) setSeedBootstrapLocked(seed []byte) error {
	boot := newElGamalUnchecked(e.p, 2, e.statDist)
	if err := boot.SetSeed(seed); err != nil {
		return err
	}
	defer boot.Free()

	rBuf := make([]byte, boot.chunkLen)
	if err := boot.GetBytes(rBuf); err != nil {
		return err
	}
	r := reduceChunk(rBuf, e.p)

	tables := make([]*fixedBaseTable, e.width)
	for i := 0; i < e.width; i++ {
		gBuf := make([]byte, boot.chunkLen)
		if err := boot.GetBytes(gBuf); err != nil {
			return err
		}
		cand := reduceChunk(gBuf, e.p)
		sq := new(big.Int).Mul(cand, cand)
		sq.Mod(sq, e.p)
		tables[i] = &fixedBaseTable{base: sq}
	}

	e.r = r
	e.tables = tables
	e.outbuf = nil
	e.seeded = true
	return nil
}

// GetBytes implements entropy.Source/PRG.
func (e *ElGamal) GetBytes(dest []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.seeded {
		panicUnseeded()
	}
	for len(dest) > 0 {
		if len(e.outbuf) == 0 {
			if err := e.iterateLocked(); err != nil {
				return err
			}
		}
		n := copy(dest, e.outbuf)
		e.outbuf = e.outbuf[n:]
		dest = dest[n:]
	}
	return nil
}

// iterateLocked runs one generator round, appending width-1 output chunks
// to outbuf and ratcheting the secret exponent r forward via the i = 0
// component.
func (e *ElGamal) iterateLocked() error {
	ls := make([]*big.Int, e.width)
	for i, t := range e.tables {
		l := t.expMod(e.r, e.p)
		if l.Cmp(e.q) > 0 {
			l = new(big.Int).Sub(e.p, l)
			l.Mod(l, e.q)
		}
		ls[i] = l
	}

	e.r = ls[0]

	buf := make([]byte, 0, (e.width-1)*e.outLen)
	for i := 1; i < e.width; i++ {
		chunk := make([]byte, e.outLen)
		b := ls[i].Bytes()
		if len(b) > e.outLen {
			b = b[len(b)-e.outLen:]
		}
		copy(chunk[e.outLen-len(b):], b)
		buf = append(buf, chunk...)
	}
	e.outbuf = buf
	return nil
}

// Free releases the fixed-base exponentiation tables. Idempotent: a second
// call, or a call after GC runs the finalizer, is a no-op.
func (e *ElGamal) Free() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.freeTablesLocked()
	runtime.SetFinalizer(e, nil)
}

// freeTablesLocked releases the tables and marks the generator unseeded, so
// a GetBytes after Free fails the same way as a GetBytes before SetSeed
// instead of touching freed state.
func (e *ElGamal) freeTablesLocked() {
	for _, t := range e.tables {
		t.free()
	}
	e.tables = nil
	e.seeded = false
}

func reduceChunk(chunk []byte, p *big.Int) *big.Int {
	v := new(big.Int).SetBytes(chunk)
	v.Mod(v, p)
	return v
}

// ClassID implements marshal.Marshaler.
func (e *ElGamal) ClassID() marshal.ClassID { return ClassIDElGamal }

// ToByteTree implements marshal.Marshaler: Node(modulus_bytetree,
// int_leaf(width), int_leaf(statDist)).
func (e *ElGamal) ToByteTree() *bytetree.ByteTree {
	return bytetree.Node(bytetree.Leaf(e.p.Bytes()), bytetree.IntLeaf(int32(e.width)), bytetree.IntLeaf(int32(e.statDist)))
}

// ElGamalFactory returns the registry factory for ElGamal. The
// reconstructed instance re-validates the modulus as a safe prime using rs
// as the Miller-Rabin randomness source; each round contributes two bits of
// certainty, so ceil(certainty/2) rounds suffice, with MillerRabinRounds as
// the floor.
func ElGamalFactory(reg *marshal.Registry) marshal.Factory {
	return func(payload *bytetree.ByteTree, rs marshal.RandomSource, certainty int) (any, error) {
		if !payload.IsNode() || payload.NumChildren() != 3 {
			return nil, &marshal.FormatError{Cause: errNotANode()}
		}
		modTree := payload.Child(0)
		if !modTree.IsLeaf() {
			return nil, &marshal.FormatError{Cause: errNotANode()}
		}
		modBytes := modTree.LeafBytes()
		if len(modBytes) > MaxModulusBytes {
			return nil, &marshal.FormatError{Cause: errModulusTooLarge(len(modBytes))}
		}
		p := new(big.Int).SetBytes(modBytes)

		width, err := bytetree.NewReader(payload.Child(1)).ReadInt()
		if err != nil {
			return nil, &marshal.FormatError{Cause: err}
		}
		statDist, err := bytetree.NewReader(payload.Child(2)).ReadInt()
		if err != nil {
			return nil, &marshal.FormatError{Cause: err}
		}

		rounds := MillerRabinRounds
		if need := (certainty + 1) / 2; need > rounds {
			rounds = need
		}
		return newElGamalRounds(p, int(width), int(statDist), rs, rounds)
	}
}

var _ entropy.Source = (*ElGamal)(nil)
var _ PRG = (*ElGamal)(nil)
