package privacy

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"clinicdesk/internal/domain"
)

// Mode identifies how the codec transforms the diagnosis at rest.
type Mode string

const (
	// ModePlaintext stores the diagnosis as-is. Chosen once at
	// construction when no valid key is configured.
	ModePlaintext Mode = "plaintext"
	// ModeAES256GCM encrypts the diagnosis with AES-256-GCM and stores
	// hex-encoded nonce||ciphertext.
	ModeAES256GCM Mode = "aes-256-gcm"
)

// Codec is the confidentiality codec for the diagnosis field. The mode is
// fixed at construction; call sites never re-check key configuration.
type Codec struct {
	mode Mode
	gcm  cipher.AEAD
}

// NewPlaintextCodec returns the identity codec.
func NewPlaintextCodec() *Codec {
	return &Codec{mode: ModePlaintext}
}

// NewAESCodec creates an encrypting codec from a hex-encoded 32-byte key.
// Callers that want the degrade-gracefully behavior fall back to
// NewPlaintextCodec on error and surface the reason to the operator.
func NewAESCodec(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &Codec{mode: ModeAES256GCM, gcm: gcm}, nil
}

// Mode reports the codec mode so the plain-text fallback stays observable
// for audit and ops purposes.
func (c *Codec) Mode() Mode { return c.mode }

// Encrypt transforms a plaintext diagnosis into its stored form. In
// plaintext mode it returns the input unchanged.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	if c.mode == ModePlaintext {
		return plaintext, nil
	}
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := c.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

// Decrypt recovers the plaintext diagnosis from its stored form. Malformed
// stored ciphertext yields a domain.CodecError.
func (c *Codec) Decrypt(stored string) (string, error) {
	if c.mode == ModePlaintext {
		return stored, nil
	}
	ciphertext, err := hex.DecodeString(stored)
	if err != nil {
		return "", domain.ErrCodec("decode stored diagnosis: %v", err)
	}
	nonceSize := c.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", domain.ErrCodec("stored diagnosis too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", domain.ErrCodec("decrypt stored diagnosis: %v", err)
	}
	return string(plaintext), nil
}
