package bytetree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigilvote/vcore/pkg/vcore/bytetree"
)

// TestLeafRoundTrip pins the canonical wire form of a three-byte leaf.
func TestLeafRoundTrip(t *testing.T) {
	leaf := bytetree.Leaf([]byte{0x61, 0x62, 0x63})
	encoded := leaf.ToBytes()
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x03, 0x61, 0x62, 0x63}, encoded)

	decoded, err := bytetree.FromBytes(encoded)
	require.NoError(t, err)
	require.True(t, leaf.Equal(decoded))

	r := bytetree.NewReader(decoded)
	require.Equal(t, 3, r.Remaining())
}

func TestNodeRoundTrip(t *testing.T) {
	tree := bytetree.Node(
		bytetree.Leaf([]byte("hello")),
		bytetree.Node(bytetree.IntLeaf(42), bytetree.StringLeaf("world")),
	)
	decoded, err := bytetree.FromBytes(tree.ToBytes())
	require.NoError(t, err)
	require.True(t, tree.Equal(decoded))

	r := bytetree.NewReader(decoded)
	require.Equal(t, 2, r.Remaining())

	child0, err := r.NextChild()
	require.NoError(t, err)
	b, err := child0.Read()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), b)

	child1, err := r.NextChild()
	require.NoError(t, err)
	grand0, err := child1.NextChild()
	require.NoError(t, err)
	i, err := grand0.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(42), i)

	grand1, err := child1.NextChild()
	require.NoError(t, err)
	s, err := grand1.ReadString()
	require.NoError(t, err)
	require.Equal(t, "world", s)
}

func TestFromBytesRejectsTruncatedLength(t *testing.T) {
	// Declares a 10-byte leaf but supplies only 2.
	malformed := []byte{0x01, 0x00, 0x00, 0x00, 0x0a, 0x01, 0x02}
	_, err := bytetree.FromBytes(malformed)
	require.Error(t, err)
	var fe *bytetree.FormatError
	require.ErrorAs(t, err, &fe)
}

// TestFromBytesRejectsHugeChildCount: a 5-byte node header declaring the
// maximum child count must fail cheaply, without the declared count driving
// an allocation before any child is read.
func TestFromBytesRejectsHugeChildCount(t *testing.T) {
	malformed := []byte{0x00, 0x7f, 0xff, 0xff, 0xff}
	_, err := bytetree.FromBytes(malformed)
	require.Error(t, err)
	var fe *bytetree.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestFromBytesRejectsUnknownTag(t *testing.T) {
	malformed := []byte{0x02, 0x00, 0x00, 0x00, 0x00}
	_, err := bytetree.FromBytes(malformed)
	require.Error(t, err)
}

func TestFromBytesRejectsTrailingBytes(t *testing.T) {
	leaf := bytetree.Leaf([]byte("ab"))
	encoded := append(leaf.ToBytes(), 0xff)
	_, err := bytetree.FromBytes(encoded)
	require.Error(t, err)
}

func TestFromBytesNeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		{0x00},
		{0x01, 0xff, 0xff, 0xff, 0xff},
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("FromBytes panicked on %v: %v", in, r)
				}
			}()
			_, _ = bytetree.FromBytes(in)
		}()
	}
}
