// Package secure holds the small crypto primitives shared by the token
// store: AES-256-GCM sealing, argon2id key derivation, passphrase
// normalization and byte wiping.
package secure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

const KeySize = 32

// Encrypt seals plaintext with AES-256-GCM and returns nonce || ciphertext.
func Encrypt(plaintext, rawKey, aad []byte) ([]byte, error) {
	if len(rawKey) != KeySize {
		return nil, fmt.Errorf("invalid AES key size: got %d, want %d", len(rawKey), KeySize)
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, aad), nil
}

// Decrypt opens a nonce || ciphertext blob produced by Encrypt.
func Decrypt(ciphertext, rawKey, aad []byte) ([]byte, error) {
	if len(rawKey) != KeySize {
		return nil, fmt.Errorf("invalid AES key size: got %d, want %d", len(rawKey), KeySize)
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce size")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("decrypting ciphertext: %w", err)
	}

	return plaintext, nil
}

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}
	return b, nil
}
