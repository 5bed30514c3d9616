package ecgroup_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigilvote/vcore/pkg/vcore/group"
	"github.com/sigilvote/vcore/pkg/vcore/group/ecgroup"
)

type cryptoRandSource struct{}

func (cryptoRandSource) GetBytes(dest []byte) error {
	_, err := rand.Read(dest)
	return err
}

// TestGeneratorRoundTrip checks the generator serializes and parses back to
// an equal element.
func TestGeneratorRoundTrip(t *testing.T) {
	g := ecgroup.New()
	gen := g.Generator()

	tree := gen.ToByteTree()
	require.True(t, tree.IsLeaf())
	require.Len(t, tree.LeafBytes(), g.ByteLength())

	back, err := g.ElementFromByteTree(tree)
	require.NoError(t, err)
	require.Equal(t, tree.LeafBytes(), back.ToByteTree().LeafBytes())
}

// TestExpAddsExponents checks g^a * g^b == g^(a+b), the core algebraic
// property the Naor-Yung construction relies on.
func TestExpAddsExponents(t *testing.T) {
	g := ecgroup.New()
	gen := g.Generator()
	ring := g.Ring()

	a, err := ring.RandomElement(cryptoRandSource{}, 80)
	require.NoError(t, err)
	b, err := ring.RandomElement(cryptoRandSource{}, 80)
	require.NoError(t, err)

	lhs := gen.Exp(a).Mul(gen.Exp(b))
	rhs := gen.Exp(a.Add(b))

	require.Equal(t, lhs.ToByteTree().LeafBytes(), rhs.ToByteTree().LeafBytes())
}

// TestEncodeDecodeRoundTrip checks the toy small-message encoding inverts
// for any byte string.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := ecgroup.New()
	msg := []byte{0, 1, 2, 3, 254, 255, 42}

	els, err := g.Encode(msg, cryptoRandSource{})
	require.NoError(t, err)
	require.Len(t, els, len(msg))

	back, err := g.Decode(els)
	require.NoError(t, err)
	require.Equal(t, msg, back)
}

// TestGroupMarshalRoundTrip exercises the Group value's own marshal.Marshaler
// implementation via the registry factory.
func TestGroupMarshalRoundTrip(t *testing.T) {
	g := ecgroup.New()
	tree := g.ToByteTree()

	rebuilt, err := ecgroup.Factory(tree, cryptoRandSource{}, 0)
	require.NoError(t, err)
	require.IsType(t, &ecgroup.Group{}, rebuilt)
}

// TestTupleHelpersRoundTrip exercises the package-level tuple helpers in
// package group against the ecgroup reference instantiation.
func TestTupleHelpersRoundTrip(t *testing.T) {
	g := ecgroup.New()
	gen := g.Generator()
	ring := g.Ring()

	exps, err := group.RandomRingTuple(ring, cryptoRandSource{}, 80, 3)
	require.NoError(t, err)

	base := group.Broadcast(gen, 3)
	tuple := group.ExpTuple(base, exps)

	tree := group.TupleToByteTree(tuple)
	require.True(t, tree.IsNode())
	require.Equal(t, 3, tree.NumChildren())

	back, err := group.TupleFromByteTree(g, tree, 3)
	require.NoError(t, err)
	for i := range tuple {
		require.Equal(t, tuple[i].ToByteTree().LeafBytes(), back[i].ToByteTree().LeafBytes())
	}
}
