package wire_test

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
	"github.com/sigilvote/vcore/pkg/vcore/group"
	"github.com/sigilvote/vcore/pkg/vcore/group/ecgroup"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/marshal"
	"github.com/sigilvote/vcore/pkg/vcore/naoryung"
	"github.com/sigilvote/vcore/pkg/vcore/prg"
	"github.com/sigilvote/vcore/pkg/vcore/wire"
)

type cryptoRandSource struct{}

func (cryptoRandSource) GetBytes(dest []byte) error {
	_, err := rand.Read(dest)
	return err
}

// TestRoundTripHashVariants checks marshal/unmarshal round-trips for the
// Platform, Merkle-Damgard and random-oracle variants registered by
// NewRegistry; Pedersen, whose Hash accepts only its exact fixed input
// length, is not covered here.
func TestRoundTripHashVariants(t *testing.T) {
	reg := wire.NewRegistry()

	sha256, err := hash.NewPlatform(hash.SHA256)
	require.NoError(t, err)

	md, err := hash.NewMerkleDamgard(sha256)
	require.NoError(t, err)

	ro, err := hash.NewRandomOracle(sha256, 300)
	require.NoError(t, err)

	for name, h := range map[string]hash.Hashfunction{"platform": sha256, "merkle-damgard": md, "random-oracle": ro} {
		t.Run(name, func(t *testing.T) {
			tree := marshal.Marshal(h)
			got, err := wire.Unmarshal[hash.Hashfunction](reg, tree, cryptoRandSource{}, 64)
			require.NoError(t, err)

			want, err := h.Hash([]byte("abc"))
			require.NoError(t, err)
			have, err := got.Hash([]byte("abc"))
			require.NoError(t, err)
			require.Equal(t, want, have)
		})
	}
}

// TestRoundTripGroup checks the marshal/unmarshal round-trip for the
// reference group.
func TestRoundTripGroup(t *testing.T) {
	reg := wire.NewRegistry()
	g := ecgroup.New()

	tree := marshal.Marshal(g)
	got, err := wire.Unmarshal[group.Group](reg, tree, cryptoRandSource{}, 64)
	require.NoError(t, err)
	require.True(t, got.Generator().ToByteTree().Equal(g.Generator().ToByteTree()))
}

// TestRoundTripNaorYungKeys round-trips PublicKey and SecretKey through
// the registry, and exercises decryption through the reconstructed secret
// key.
func TestRoundTripNaorYungKeys(t *testing.T) {
	reg := wire.NewRegistry()

	sha256, err := hash.NewPlatform(hash.SHA256)
	require.NoError(t, err)
	roh, err := hash.NewRandomOracle(sha256, 256)
	require.NoError(t, err)

	kg, err := naoryung.NewKeyGenerator(ecgroup.New(), roh, 256)
	require.NoError(t, err)
	pk, sk, err := kg.Generate(cryptoRandSource{}, 100)
	require.NoError(t, err)

	pkTree := marshal.Marshal(pk)
	gotPK, err := wire.Unmarshal[*naoryung.PublicKey](reg, pkTree, cryptoRandSource{}, 64)
	require.NoError(t, err)
	require.True(t, gotPK.G1.ToByteTree().Equal(pk.G1.ToByteTree()))
	require.True(t, gotPK.H.ToByteTree().Equal(pk.H.ToByteTree()))

	skTree := marshal.Marshal(sk)
	gotSK, err := wire.Unmarshal[*naoryung.SecretKey](reg, skTree, cryptoRandSource{}, 64)
	require.NoError(t, err)

	ct, err := naoryung.Encrypt(pk, []byte("L"), []byte("hi"), cryptoRandSource{}, 100)
	require.NoError(t, err)
	msg, ok := naoryung.Decrypt(gotSK, []byte("L"), ct)
	require.True(t, ok)
	require.Equal(t, []byte("hi"), msg)
}

// TestRoundTripPRGs: both PRGs round-trip through the registry as their
// construction parameters; the rebuilt generator is unseeded but, once
// given the same seed, emits the same stream as the original.
func TestRoundTripPRGs(t *testing.T) {
	reg := wire.NewRegistry()

	sha256, err := hash.NewPlatform(hash.SHA256)
	require.NoError(t, err)

	t.Run("hash-counter", func(t *testing.T) {
		hc := prg.NewHashCounter(sha256)
		got, err := wire.Unmarshal[*prg.HashCounter](reg, marshal.Marshal(hc), cryptoRandSource{}, 64)
		require.NoError(t, err)

		seed := make([]byte, hc.MinSeedBytes())
		seed[0] = 0x5a
		require.NoError(t, hc.SetSeed(seed))
		require.NoError(t, got.SetSeed(seed))

		a := make([]byte, 96)
		b := make([]byte, 96)
		require.NoError(t, hc.GetBytes(a))
		require.NoError(t, got.GetBytes(b))
		require.Equal(t, a, b)
	})

	t.Run("elgamal", func(t *testing.T) {
		p, ok := new(big.Int).SetString(testSafePrimeHex, 16)
		require.True(t, ok)

		eg, err := prg.NewElGamal(p, 2, 100, cryptoRandSource{})
		require.NoError(t, err)
		t.Cleanup(eg.Free)

		got, err := wire.Unmarshal[*prg.ElGamal](reg, marshal.Marshal(eg), cryptoRandSource{}, 20)
		require.NoError(t, err)
		t.Cleanup(got.Free)
		require.Equal(t, eg.MinSeedBytes(), got.MinSeedBytes())

		seed := make([]byte, eg.MinSeedBytes())
		seed[0] = 0x5a
		require.NoError(t, eg.SetSeed(seed))
		require.NoError(t, got.SetSeed(seed))

		a := make([]byte, 96)
		b := make([]byte, 96)
		require.NoError(t, eg.GetBytes(a))
		require.NoError(t, got.GetBytes(b))
		require.Equal(t, a, b)
	})
}

// testSafePrimeHex is a 512-bit safe prime, small enough to keep the
// factory's Miller-Rabin re-validation fast.
const testSafePrimeHex = "EE2C50993F2BC0BB8DCACCB41F81D9CF35E3F7BBD0E8C2B90D143F2704683B6727016B2DEDC50D6920F98DCE68F096B9EFA87E7CD76A2E3C89518C5642DD65CF"

// TestClassifyErrorKinds spot-checks Classify against representative
// failures from different packages.
func TestClassifyErrorKinds(t *testing.T) {
	reg := wire.NewRegistry()

	_, err := reg.Unmarshal(marshal.Marshal(stubMarshaler{}), cryptoRandSource{}, 1)
	require.Error(t, err)
	require.Equal(t, wire.KindFormat, wire.Classify(err))
}

type stubMarshaler struct{}

func (stubMarshaler) ClassID() marshal.ClassID { return "vcore.wire.unknown" }
func (stubMarshaler) ToByteTree() *bytetree.ByteTree { return bytetree.Leaf(nil) }
