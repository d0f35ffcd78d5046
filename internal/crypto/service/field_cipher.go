package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
)

const (
	// GCMNonceSize is the IV length prepended to every envelope.
	GCMNonceSize = 12
	// GCMTagSize is the authentication tag length appended by GCM.
	GCMTagSize = 16
)

// aesGCMFieldCipher implements FieldCipher using AES-GCM with a 96-bit random IV
// and a 128-bit tag.
//
// The envelope layout is base64.StdEncoding(IV || ciphertext || tag). The same
// plaintext encrypts to a different envelope on every call, so encrypted columns
// cannot be used for equality lookups.
//
// The cipher holds no mutable state and is safe for concurrent use.
type aesGCMFieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher creates an AES-GCM FieldCipher. The key must be 16, 24 or 32
// bytes (AES-128, AES-192, AES-256), otherwise ErrKeyConfiguration is returned.
func NewFieldCipher(key []byte) (FieldCipher, error) {
	if !cryptoDomain.ValidAESKeySize(len(key)) {
		return nil, fmt.Errorf(
			"%w: encryption key must be 16, 24 or 32 bytes, got %d",
			cryptoDomain.ErrKeyConfiguration,
			len(key),
		)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create AES cipher: %v", cryptoDomain.ErrKeyConfiguration, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, GCMNonceSize)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GCM: %v", cryptoDomain.ErrKeyConfiguration, err)
	}

	return &aesGCMFieldCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random IV.
func (c *aesGCMFieldCipher) Encrypt(plaintext string) (string, error) {
	buf := make([]byte, GCMNonceSize, GCMNonceSize+len(plaintext)+GCMTagSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	// Seal appends ciphertext||tag after the IV already held in buf.
	sealed := c.aead.Seal(buf, buf[:GCMNonceSize], []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope. Every failure is reported as ErrCryptoIntegrity and
// no partial plaintext is ever returned.
func (c *aesGCMFieldCipher) Decrypt(envelope string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope encoding", cryptoDomain.ErrCryptoIntegrity)
	}
	if len(raw) < GCMNonceSize+GCMTagSize {
		return "", fmt.Errorf("%w: envelope too short", cryptoDomain.ErrCryptoIntegrity)
	}

	plaintext, err := c.aead.Open(nil, raw[:GCMNonceSize], raw[GCMNonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", cryptoDomain.ErrCryptoIntegrity)
	}
	return string(plaintext), nil
}

func (c *aesGCMFieldCipher) EncryptNullable(plaintext *string) (*string, error) {
	if plaintext == nil {
		return nil, nil
	}
	envelope, err := c.Encrypt(*plaintext)
	if err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (c *aesGCMFieldCipher) DecryptNullable(envelope *string) (*string, error) {
	if envelope == nil {
		return nil, nil
	}
	plaintext, err := c.Decrypt(*envelope)
	if err != nil {
		return nil, err
	}
	return &plaintext, nil
}

// GenerateEncryptionKey returns a random AES key of the given size in bytes.
func GenerateEncryptionKey(size int) ([]byte, error) {
	if !cryptoDomain.ValidAESKeySize(size) {
		return nil, fmt.Errorf(
			"%w: key size must be 16, 24 or 32 bytes, got %d",
			cryptoDomain.ErrInvalidArgument,
			size,
		)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// GenerateSigningSecret returns size random bytes suitable as an HMAC secret.
func GenerateSigningSecret(size int) ([]byte, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: secret size must be positive", cryptoDomain.ErrInvalidArgument)
	}
	secret := make([]byte, size)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return secret, nil
}
