package store

import (
	"fmt"

	"github.com/jcarver/wellpath/internal/secure"
)

// RecordAAD binds sealed records to their purpose so a ciphertext cannot
// be replayed under a different label.
const RecordAAD = "wellpath/session"

// Envelope is a sealed record containing AES-256-GCM encrypted data.
type Envelope struct {
	Ver        int    `json:"ver"`
	Scheme     string `json:"scheme"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Seal encrypts plaintext into an Envelope using the given sealing key.
func Seal(sealingKey, plaintext []byte) (*Envelope, error) {
	cipher, err := secure.Encrypt(plaintext, sealingKey, []byte(RecordAAD))
	if err != nil {
		return nil, err
	}

	// secure.Encrypt returns nonce || ciphertext.
	return &Envelope{
		Ver:        1,
		Scheme:     "aes256gcm",
		Nonce:      cipher[:12],
		Ciphertext: cipher[12:],
	}, nil
}

// Open decrypts an Envelope using the given sealing key.
func Open(sealingKey []byte, envelope *Envelope) ([]byte, error) {
	if envelope.Ver != 1 {
		return nil, fmt.Errorf("unsupported envelope version: %d", envelope.Ver)
	}
	if envelope.Scheme != "aes256gcm" {
		return nil, fmt.Errorf("unsupported envelope scheme: %s", envelope.Scheme)
	}

	fullCipher := make([]byte, len(envelope.Nonce)+len(envelope.Ciphertext))
	copy(fullCipher, envelope.Nonce)
	copy(fullCipher[len(envelope.Nonce):], envelope.Ciphertext)

	return secure.Decrypt(fullCipher, sealingKey, []byte(RecordAAD))
}
