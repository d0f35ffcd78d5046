package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
	apperrors "github.com/cube/simple/internal/errors"
)

// sha256CredentialHasher hashes credentials as lowercase hex SHA-256 of their UTF-8 bytes.
//
// The digest is deterministic and unsalted, and Matches uses ordinary string
// equality, so it is neither salted nor constant time. Deployments that do not need
// to verify digests produced elsewhere should select the Argon2id hasher.
type sha256CredentialHasher struct{}

// NewSHA256CredentialHasher creates the default, deterministic CredentialHasher.
func NewSHA256CredentialHasher() CredentialHasher {
	return &sha256CredentialHasher{}
}

// Hash returns a 64 character lowercase hex digest.
func (h *sha256CredentialHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperrors.Wrap(cryptoDomain.ErrInvalidArgument, "credential is empty")
	}
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}

func (h *sha256CredentialHasher) Matches(plaintext, storedHash string) bool {
	if plaintext == "" || storedHash == "" {
		return false
	}
	digest, err := h.Hash(plaintext)
	if err != nil {
		return false
	}
	return digest == storedHash
}

// argon2idCredentialHasher hashes credentials with Argon2id (salted, PHC string format).
type argon2idCredentialHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewArgon2idCredentialHasher creates a salted CredentialHasher using the Moderate policy.
func NewArgon2idCredentialHasher() (CredentialHasher, error) {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create argon2id hasher")
	}
	return &argon2idCredentialHasher{hasher: hasher}, nil
}

func (h *argon2idCredentialHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperrors.Wrap(cryptoDomain.ErrInvalidArgument, "credential is empty")
	}
	hashed, err := h.hasher.Hash([]byte(plaintext))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash credential")
	}
	return hashed, nil
}

// Matches performs a constant-time verification against an Argon2id digest.
func (h *argon2idCredentialHasher) Matches(plaintext, storedHash string) bool {
	if plaintext == "" || storedHash == "" {
		return false
	}
	ok, err := h.hasher.Verify([]byte(plaintext), storedHash)
	if err != nil {
		return false
	}
	return ok
}
