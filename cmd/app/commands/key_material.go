package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
	cryptoService "github.com/cube/simple/internal/crypto/service"
)

// RunCreateSigningSecret prints a fresh random JWT_SECRET of size bytes.
// With kmsKeyURI set the secret is encrypted by the KMS keeper and the output is
// the base64 ciphertext, ready to be unwrapped at startup through KMS_KEY_URI.
func RunCreateSigningSecret(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	size int,
	kmsKeyURI string,
) error {
	secret, err := cryptoService.GenerateSigningSecret(size)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(secret)

	if size < cryptoDomain.MinStrongSigningSecretSize {
		logger.Warn("signing secret is shorter than 32 bytes",
			slog.Int("size", size),
			slog.Int("min_recommended_bytes", cryptoDomain.MinStrongSigningSecretSize))
	}

	return writeKeyMaterial(ctx, kmsService, logger, writer, "JWT_SECRET", secret, kmsKeyURI)
}

// RunCreateEncryptionKey prints a fresh AES_KEY of size bytes (16, 24 or 32),
// optionally wrapped by the KMS keeper at kmsKeyURI.
func RunCreateEncryptionKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	size int,
	kmsKeyURI string,
) error {
	key, err := cryptoService.GenerateEncryptionKey(size)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	return writeKeyMaterial(ctx, kmsService, logger, writer, "AES_KEY", key, kmsKeyURI)
}

func writeKeyMaterial(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	envName string,
	raw []byte,
	kmsKeyURI string,
) error {
	if kmsKeyURI == "" {
		_, err := fmt.Fprintf(writer, "%s=\"%s\"\n", envName, base64.StdEncoding.EncodeToString(raw))
		return err
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close kms keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := kmsService.WrapSecret(ctx, keeper, raw)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(writer, "%s=\"%s\"\nKMS_KEY_URI=\"%s\"\n", envName, ciphertext, kmsKeyURI)
	return err
}
