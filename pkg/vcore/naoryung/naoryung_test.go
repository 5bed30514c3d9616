package naoryung_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigilvote/vcore/pkg/vcore/group/ecgroup"
	"github.com/sigilvote/vcore/pkg/vcore/hash"
	"github.com/sigilvote/vcore/pkg/vcore/naoryung"
)

type cryptoRandSource struct{}

func (cryptoRandSource) GetBytes(dest []byte) error {
	_, err := rand.Read(dest)
	return err
}

func newROH(t *testing.T, secpro int) hash.Hashfunction {
	t.Helper()
	sha256, err := hash.NewPlatform(hash.SHA256)
	require.NoError(t, err)
	ro, err := hash.NewRandomOracle(sha256, secpro)
	require.NoError(t, err)
	return ro
}

func newKeys(t *testing.T) (*naoryung.PublicKey, *naoryung.SecretKey) {
	t.Helper()
	kg, err := naoryung.NewKeyGenerator(ecgroup.New(), newROH(t, 256), 256)
	require.NoError(t, err)
	pk, sk, err := kg.Generate(cryptoRandSource{}, 100)
	require.NoError(t, err)
	return pk, sk
}

// TestRoundTrip is the happy path: encrypt/decrypt recovers the original
// message under a matching label.
func TestRoundTrip(t *testing.T) {
	pk, sk := newKeys(t)

	ct, err := naoryung.Encrypt(pk, []byte("L"), []byte("hello"), cryptoRandSource{}, 100)
	require.NoError(t, err)

	msg, ok := naoryung.Decrypt(sk, []byte("L"), ct)
	require.True(t, ok)
	require.Equal(t, []byte("hello"), msg)
}

// TestEmptyMessage exercises Encode/Decode over a zero-length message
// (width-0 tuples throughout).
func TestEmptyMessage(t *testing.T) {
	pk, sk := newKeys(t)

	ct, err := naoryung.Encrypt(pk, []byte("L"), []byte{}, cryptoRandSource{}, 100)
	require.NoError(t, err)

	msg, ok := naoryung.Decrypt(sk, []byte("L"), ct)
	require.True(t, ok)
	require.Equal(t, []byte{}, msg)
}

// TestEmptyCiphertext: an empty ciphertext decrypts to empty bytes
// without touching the proof machinery.
func TestEmptyCiphertext(t *testing.T) {
	_, sk := newKeys(t)
	msg, ok := naoryung.Decrypt(sk, []byte("L"), nil)
	require.True(t, ok)
	require.Equal(t, []byte{}, msg)
}

// TestWrongLabelInvalid: changing the label invalidates a ciphertext
// that was valid under the original label.
func TestWrongLabelInvalid(t *testing.T) {
	pk, sk := newKeys(t)

	ct, err := naoryung.Encrypt(pk, []byte("L"), []byte("hello"), cryptoRandSource{}, 100)
	require.NoError(t, err)

	_, ok := naoryung.Decrypt(sk, []byte("L'"), ct)
	require.False(t, ok)
}

// TestFlippedByteInvalid: flipping any non-zero bit of the ciphertext's
// final scalar (or any other field) invalidates it.
func TestFlippedByteInvalid(t *testing.T) {
	pk, sk := newKeys(t)

	ct, err := naoryung.Encrypt(pk, []byte("L"), []byte("hello"), cryptoRandSource{}, 100)
	require.NoError(t, err)

	for i := len(ct) - 1; i >= 0; i-- {
		if ct[i] == 0 {
			continue
		}
		flipped := append([]byte(nil), ct...)
		flipped[i] ^= 0x01
		_, ok := naoryung.Decrypt(sk, []byte("L"), flipped)
		require.False(t, ok, "flipping byte %d should invalidate the ciphertext", i)
		break
	}
}

// TestTruncatedCiphertextInvalid exercises the FormatError path folding
// into the same invalid outcome as a proof failure.
func TestTruncatedCiphertextInvalid(t *testing.T) {
	pk, sk := newKeys(t)

	ct, err := naoryung.Encrypt(pk, []byte("L"), []byte("hello"), cryptoRandSource{}, 100)
	require.NoError(t, err)

	_, ok := naoryung.Decrypt(sk, []byte("L"), ct[:len(ct)/2])
	require.False(t, ok)
}
