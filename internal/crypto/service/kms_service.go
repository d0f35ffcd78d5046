package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/cube/simple/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens KMS keepers and unwraps key material protected by them.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// UnwrapKeyMaterial decrypts base64 encoded KMS ciphertexts of the signing secret
	// and encryption key, then validates them as KeyMaterial.
	UnwrapKeyMaterial(
		ctx context.Context,
		keeper cryptoDomain.KMSKeeper,
		signingSecretCiphertext, encryptionKeyCiphertext string,
	) (*cryptoDomain.KeyMaterial, error)

	// WrapSecret encrypts raw bytes with the keeper and returns base64 ciphertext.
	WrapSecret(ctx context.Context, keeper cryptoDomain.KMSKeeper, plaintext []byte) (string, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a keeper using keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

func (k *kmsService) UnwrapKeyMaterial(
	ctx context.Context,
	keeper cryptoDomain.KMSKeeper,
	signingSecretCiphertext, encryptionKeyCiphertext string,
) (*cryptoDomain.KeyMaterial, error) {
	signingSecret, err := k.unwrap(ctx, keeper, signingSecretCiphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: signing secret: %v", cryptoDomain.ErrKeyConfiguration, err)
	}
	defer cryptoDomain.Zero(signingSecret)

	encryptionKey, err := k.unwrap(ctx, keeper, encryptionKeyCiphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key: %v", cryptoDomain.ErrKeyConfiguration, err)
	}
	defer cryptoDomain.Zero(encryptionKey)

	return cryptoDomain.NewKeyMaterial(signingSecret, encryptionKey)
}

func (k *kmsService) WrapSecret(
	ctx context.Context,
	keeper cryptoDomain.KMSKeeper,
	plaintext []byte,
) (string, error) {
	ciphertext, err := keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (k *kmsService) unwrap(ctx context.Context, keeper cryptoDomain.KMSKeeper, ciphertextB64 string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt with KMS: %w", err)
	}
	return plaintext, nil
}
