package prg_test

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/prg"
)

type cryptoRandSource struct{}

func (cryptoRandSource) GetBytes(dest []byte) error {
	_, err := rand.Read(dest)
	return err
}

// testSafePrimeHex is a 512-bit safe prime (p = 2q+1, both p and q prime),
// large enough to exercise EG-PRG's chunking arithmetic realistically
// without the minutes-long Miller-Rabin cost of a production-sized modulus.
const testSafePrimeHex = "EE2C50993F2BC0BB8DCACCB41F81D9CF35E3F7BBD0E8C2B90D143F2704683B6727016B2DEDC50D6920F98DCE68F096B9EFA87E7CD76A2E3C89518C5642DD65CF"

func safePrime(t *testing.T) *big.Int {
	t.Helper()
	p, ok := new(big.Int).SetString(testSafePrimeHex, 16)
	require.True(t, ok)
	return p
}

// TestHashCounterKnownVector: a SHA-256 HC-PRG seeded with 32 zero bytes
// must emit SHA-256(zero32||00000000) || SHA-256(zero32||00000001) as its
// first 64 output bytes.
func TestHashCounterKnownVector(t *testing.T) {
	sha, err := hash.NewPlatform(hash.SHA256)
	require.NoError(t, err)

	hc := prg.NewHashCounter(sha)
	require.NoError(t, hc.SetSeed(make([]byte, 32)))

	out := make([]byte, 64)
	require.NoError(t, hc.GetBytes(out))

	zero32 := make([]byte, 32)
	block0 := sha256.Sum256(append(append([]byte{}, zero32...), 0, 0, 0, 0))
	block1 := sha256.Sum256(append(append([]byte{}, zero32...), 0, 0, 0, 1))
	want := append(append([]byte{}, block0[:]...), block1[:]...)

	require.Equal(t, want, out)
}

// TestHashCounterRejectsShortSeed enforces the MinSeedBytes contract.
func TestHashCounterRejectsShortSeed(t *testing.T) {
	sha, err := hash.NewPlatform(hash.SHA256)
	require.NoError(t, err)
	hc := prg.NewHashCounter(sha)
	require.Error(t, hc.SetSeed(make([]byte, 31)))
}

// TestElGamalDeterministicSeeding: two EG-PRG instances seeded with the
// same bytes over the same modulus produce identical output streams.
func TestElGamalDeterministicSeeding(t *testing.T) {
	p := safePrime(t)

	a, err := prg.NewElGamal(p, 2, 100, cryptoRandSource{})
	require.NoError(t, err)
	b, err := prg.NewElGamal(p, 2, 100, cryptoRandSource{})
	require.NoError(t, err)
	t.Cleanup(a.Free)
	t.Cleanup(b.Free)

	seed := make([]byte, a.MinSeedBytes())
	_, err = rand.Read(seed)
	require.NoError(t, err)

	require.NoError(t, a.SetSeed(seed))
	require.NoError(t, b.SetSeed(seed))

	outA := make([]byte, 200)
	outB := make([]byte, 200)
	require.NoError(t, a.GetBytes(outA))
	require.NoError(t, b.GetBytes(outB))

	require.Equal(t, outA, outB)
}

// TestElGamalWidthKBootstrapsThroughTwo exercises the width > 2 bootstrap
// path, checking only that it runs deterministically, not that its output
// matches a width-2 instance (the two paths are not required to agree).
func TestElGamalWidthKBootstrapsThroughTwo(t *testing.T) {
	p := safePrime(t)

	a, err := prg.NewElGamal(p, 4, 100, cryptoRandSource{})
	require.NoError(t, err)
	t.Cleanup(a.Free)

	seed := make([]byte, a.MinSeedBytes())
	_, err = rand.Read(seed)
	require.NoError(t, err)
	require.NoError(t, a.SetSeed(seed))

	out1 := make([]byte, 100)
	require.NoError(t, a.GetBytes(out1))

	b, err := prg.NewElGamal(p, 4, 100, cryptoRandSource{})
	require.NoError(t, err)
	t.Cleanup(b.Free)
	require.NoError(t, b.SetSeed(seed))
	out2 := make([]byte, 100)
	require.NoError(t, b.GetBytes(out2))

	require.Equal(t, out1, out2)
}

// TestElGamalRejectsWidthBelowTwo enforces the width >= 2 precondition.
func TestElGamalRejectsWidthBelowTwo(t *testing.T) {
	p := safePrime(t)
	_, err := prg.NewElGamal(p, 1, 100, cryptoRandSource{})
	require.Error(t, err)
}

// TestElGamalRejectsNonSafePrime: 15 = 3*5 is composite, so the
// Miller-Rabin pass over p itself must reject it (the pass over
// q = (p-1)/2 = 7 never runs).
func TestElGamalRejectsNonSafePrime(t *testing.T) {
	_, err := prg.NewElGamal(big.NewInt(15), 2, 10, cryptoRandSource{})
	require.Error(t, err)
}

// TestElGamalFreeIsIdempotent: calling Free twice must not panic or
// double-release the exponentiation tables.
func TestElGamalFreeIsIdempotent(t *testing.T) {
	p := safePrime(t)
	a, err := prg.NewElGamal(p, 2, 100, cryptoRandSource{})
	require.NoError(t, err)

	seed := make([]byte, a.MinSeedBytes())
	_, err = rand.Read(seed)
	require.NoError(t, err)
	require.NoError(t, a.SetSeed(seed))

	a.Free()
	a.Free()
}
