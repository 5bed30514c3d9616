// Package prg implements vcore's seeded pseudo-random generators: a
// hash-with-counter PRG (HC-PRG) and a provably-secure ElGamal-based PRG
// over a safe-prime group of squares (EG-PRG). Both also satisfy
// entropy.Source, so a seeded PRG can stand in anywhere a random source is
// expected.
package prg

import "github.com/sigilvote/vcore/pkg/vcore/entropy"

// Hashfunction is the subset of hash.Hashfunction that HC-PRG needs: a
// one-shot hash over a set of byte slices. It is declared locally (rather
// than imported from package hash) so that package hash can build its
// RandomOracle on top of HashCounter without an import cycle; any
// hash.Hashfunction value already satisfies this interface structurally.
type Hashfunction interface {
	Hash(parts ...[]byte) ([]byte, error)
	// OutputBytes is the fixed digest length, consulted by HashCounter to
	// derive its own MinSeedBytes.
	OutputBytes() int
}

// PRG is the seedable-generator contract: every PRG is also an
// entropy.Source, and additionally accepts a seed and reports the minimum
// seed length it needs.
type PRG interface {
	entropy.Source
	// SetSeed installs seed as the generator's state. It fails if
	// len(seed) < MinSeedBytes().
	SetSeed(seed []byte) error
	// MinSeedBytes is the shortest seed SetSeed will accept.
	MinSeedBytes() int
}
