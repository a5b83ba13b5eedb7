package secure

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/text/unicode/norm"
)

// KDFParams are the argon2id cost parameters persisted next to a derived
// key so the same key can be re-derived later.
type KDFParams struct {
	Time        uint32 `json:"time"`
	MemoryKiB   uint32 `json:"memory"`
	Parallelism uint8  `json:"parallelism"`
	KeyLen      uint32 `json:"key_len"`
}

func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		KeyLen:      KeySize,
	}
}

// DeriveKey derives a sealing key from a passphrase. The passphrase is
// NFKD-normalized first so visually identical input always derives the
// same key.
func DeriveKey(passphrase string, salt []byte, params KDFParams) ([]byte, error) {
	if params.KeyLen != KeySize {
		return nil, fmt.Errorf("argon2id key length must be %d bytes", KeySize)
	}
	normalized := Normalize(passphrase)
	key := argon2.IDKey([]byte(normalized), salt, params.Time, params.MemoryKiB, params.Parallelism, params.KeyLen)
	return key, nil
}

// VerifyKey re-derives a key from a passphrase and compares it in constant
// time against an expected key.
func VerifyKey(passphrase string, salt []byte, params KDFParams, expectedKey []byte) (bool, error) {
	key, err := DeriveKey(passphrase, salt, params)
	if err != nil {
		return false, err
	}
	defer Wipe(key)
	return subtle.ConstantTimeCompare(key, expectedKey) == 1, nil
}

// Normalize applies NFKD normalization to user-supplied secret text.
func Normalize(s string) string {
	return norm.NFKD.String(s)
}
