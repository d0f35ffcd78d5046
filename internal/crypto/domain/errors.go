package domain

import (
	"github.com/cube/simple/internal/errors"
)

// Cryptographic error definitions.
//
// These wrap the standard errors from internal/errors so the HTTP layer can map
// them without knowing about cryptography.
var (
	// ErrKeyConfiguration indicates the signing secret or encryption key is missing or malformed.
	//
	// Raised at startup by KeyMaterial construction and by FieldCipher when given a key
	// that is not 16, 24 or 32 bytes long. The process must not serve requests with
	// invalid key material.
	ErrKeyConfiguration = errors.Wrap(errors.ErrInternal, "invalid key configuration")

	// ErrCryptoIntegrity indicates a ciphertext envelope could not be opened.
	//
	// Covers malformed base64, envelopes shorter than IV plus tag, tag mismatch and a
	// wrong key. The cause is deliberately not distinguished.
	//
	// HTTP Status: 500 Internal Server Error
	ErrCryptoIntegrity = errors.Wrap(errors.ErrInternal, "crypto integrity failure")

	// ErrInvalidArgument indicates a required input was absent (e.g. hashing an empty credential).
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidArgument = errors.Wrap(errors.ErrInvalidInput, "invalid argument")
)
