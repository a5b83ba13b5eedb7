package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)

	plaintext := []byte("a highly sensitive session record")
	aad := []byte("wellpath/session")

	ciphertext, err := Encrypt(plaintext, key, aad)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := Decrypt(ciphertext, key, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptRejectsWrongAAD(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)

	ciphertext, err := Encrypt([]byte("payload"), key, []byte("aad-one"))
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, key, []byte("aad-two"))
	assert.Error(t, err)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	key, err := RandomBytes(KeySize)
	require.NoError(t, err)

	ciphertext, err := Encrypt([]byte("payload"), key, nil)
	require.NoError(t, err)

	ciphertext[len(ciphertext)-1] ^= 0xff
	_, err = Decrypt(ciphertext, key, nil)
	assert.Error(t, err)
}

func TestEncryptRejectsBadKeySize(t *testing.T) {
	_, err := Encrypt([]byte("x"), []byte("short"), nil)
	assert.Error(t, err)
	_, err = Decrypt([]byte("x"), []byte("short"), nil)
	assert.Error(t, err)
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt, err := RandomBytes(16)
	require.NoError(t, err)

	params := DefaultKDFParams()
	k1, err := DeriveKey("correct horse battery staple", salt, params)
	require.NoError(t, err)
	k2, err := DeriveKey("correct horse battery staple", salt, params)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeySize)

	k3, err := DeriveKey("a different passphrase", salt, params)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestDeriveKeyNormalizesPassphrase(t *testing.T) {
	salt, err := RandomBytes(16)
	require.NoError(t, err)

	// U+00E9 vs e + combining acute should derive the same key.
	k1, err := DeriveKey("café", salt, DefaultKDFParams())
	require.NoError(t, err)
	k2, err := DeriveKey("café", salt, DefaultKDFParams())
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestVerifyKey(t *testing.T) {
	salt, err := RandomBytes(16)
	require.NoError(t, err)

	params := DefaultKDFParams()
	key, err := DeriveKey("passphrase", salt, params)
	require.NoError(t, err)

	ok, err := VerifyKey("passphrase", salt, params, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyKey("wrong", salt, params, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
