package domain

import (
	"encoding/base64"
	"fmt"
	"log/slog"
)

// Valid AES key lengths in bytes (AES-128, AES-192, AES-256).
const (
	AES128KeySize = 16
	AES192KeySize = 24
	AES256KeySize = 32

	// MinStrongSigningSecretSize is the signing secret length below which HS256 is considered weak.
	MinStrongSigningSecretSize = 32
)

// KeyMaterial holds the two process-wide secrets: the HMAC signing secret used for
// bearer tokens and the AES key used for field encryption.
//
// It is loaded once at startup and never mutated afterwards, so it can be shared
// across goroutines without locking. Accessors return copies so callers cannot
// alter the held bytes.
type KeyMaterial struct {
	signingSecret []byte
	encryptionKey []byte
}

// NewKeyMaterial validates and copies the raw secrets.
//
// Returns ErrKeyConfiguration when the signing secret is empty or the encryption
// key is not 16, 24 or 32 bytes long.
func NewKeyMaterial(signingSecret, encryptionKey []byte) (*KeyMaterial, error) {
	if len(signingSecret) == 0 {
		return nil, fmt.Errorf("%w: signing secret is empty", ErrKeyConfiguration)
	}
	if !ValidAESKeySize(len(encryptionKey)) {
		return nil, fmt.Errorf(
			"%w: encryption key must be 16, 24 or 32 bytes, got %d",
			ErrKeyConfiguration,
			len(encryptionKey),
		)
	}

	return &KeyMaterial{
		signingSecret: append([]byte(nil), signingSecret...),
		encryptionKey: append([]byte(nil), encryptionKey...),
	}, nil
}

// LoadKeyMaterial decodes base64 (standard encoding) values and builds KeyMaterial.
// Decoded temporaries are zeroed before returning.
func LoadKeyMaterial(signingSecretB64, encryptionKeyB64 string) (*KeyMaterial, error) {
	signingSecret, err := base64.StdEncoding.DecodeString(signingSecretB64)
	if err != nil {
		return nil, fmt.Errorf("%w: signing secret is not valid base64", ErrKeyConfiguration)
	}
	defer Zero(signingSecret)

	encryptionKey, err := base64.StdEncoding.DecodeString(encryptionKeyB64)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is not valid base64", ErrKeyConfiguration)
	}
	defer Zero(encryptionKey)

	return NewKeyMaterial(signingSecret, encryptionKey)
}

// ValidAESKeySize reports whether n is an accepted AES key length.
func ValidAESKeySize(n int) bool {
	switch n {
	case AES128KeySize, AES192KeySize, AES256KeySize:
		return true
	default:
		return false
	}
}

// SigningSecret returns a copy of the HMAC signing secret.
func (k *KeyMaterial) SigningSecret() []byte {
	return append([]byte(nil), k.signingSecret...)
}

// EncryptionKey returns a copy of the AES key.
func (k *KeyMaterial) EncryptionKey() []byte {
	return append([]byte(nil), k.encryptionKey...)
}

// WeakSigningSecret reports whether the signing secret is shorter than 32 bytes.
func (k *KeyMaterial) WeakSigningSecret() bool {
	return len(k.signingSecret) < MinStrongSigningSecretSize
}

// Close zeroes both secrets. The value must not be used afterwards.
func (k *KeyMaterial) Close() {
	Zero(k.signingSecret)
	Zero(k.encryptionKey)
	k.signingSecret = nil
	k.encryptionKey = nil
}

// String redacts the secrets.
func (k *KeyMaterial) String() string {
	return fmt.Sprintf(
		"KeyMaterial{signingSecret:[%d bytes] encryptionKey:[%d bytes]}",
		len(k.signingSecret),
		len(k.encryptionKey),
	)
}

// LogValue implements slog.LogValuer so key material never reaches log output.
func (k *KeyMaterial) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("signing_secret_bytes", len(k.signingSecret)),
		slog.Int("encryption_key_bits", len(k.encryptionKey)*8),
	)
}

// Zero wipes secret bytes in place. Callers defer it on every decoded copy.
func Zero(b []byte) {
	clear(b)
}
