// Package service provides the cryptographic primitives used at the data boundary:
// AES-GCM field encryption, credential hashing and KMS-backed key unwrapping.
package service

// CredentialHasher turns credentials into storable one-way digests and checks them.
type CredentialHasher interface {
	// Hash returns the digest of plaintext. An empty plaintext is rejected with
	// cryptoDomain.ErrInvalidArgument so that an absent credential is never stored.
	Hash(plaintext string) (string, error)

	// Matches reports whether plaintext hashes to storedHash. It returns false when
	// either argument is empty.
	Matches(plaintext, storedHash string) bool
}

// FieldCipher performs reversible encryption of individual string fields.
type FieldCipher interface {
	// Encrypt returns base64(IV || ciphertext || tag).
	Encrypt(plaintext string) (string, error)

	// Decrypt opens an envelope produced by Encrypt.
	Decrypt(envelope string) (string, error)

	// EncryptNullable passes nil through unchanged.
	EncryptNullable(plaintext *string) (*string, error)

	// DecryptNullable passes nil through unchanged.
	DecryptNullable(envelope *string) (*string, error)
}
