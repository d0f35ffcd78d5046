package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cube/simple/internal/config"
	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
	cryptoService "github.com/cube/simple/internal/crypto/service"
	"github.com/cube/simple/internal/crypto/transform"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyMaterial returns the process-wide signing secret and encryption key.
// Any error here is fatal: the server must not start with bad key material.
func (c *Container) KeyMaterial() (*cryptoDomain.KeyMaterial, error) {
	var err error
	c.keyMaterialInit.Do(func() {
		c.keyMaterial, err = c.initKeyMaterial()
		if err != nil {
			c.initErrors["keyMaterial"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyMaterial"]; exists {
		return nil, storedErr
	}
	return c.keyMaterial, nil
}

// FieldCipher returns the AES-GCM cipher for encryptable fields.
func (c *Container) FieldCipher() (cryptoService.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		c.fieldCipher, err = c.initFieldCipher()
		if err != nil {
			c.initErrors["fieldCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// CredentialHasher returns the hasher selected by CREDENTIAL_HASHER.
func (c *Container) CredentialHasher() (cryptoService.CredentialHasher, error) {
	var err error
	c.credentialHasherInit.Do(func() {
		c.credentialHasher, err = c.initCredentialHasher()
		if err != nil {
			c.initErrors["credentialHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialHasher"]; exists {
		return nil, storedErr
	}
	return c.credentialHasher, nil
}

// TransformEngine returns the engine applying field manifests at the persistence boundary.
func (c *Container) TransformEngine() (*transform.Engine, error) {
	var err error
	c.transformEngineInit.Do(func() {
		c.transformEngine, err = c.initTransformEngine()
		if err != nil {
			c.initErrors["transformEngine"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transformEngine"]; exists {
		return nil, storedErr
	}
	return c.transformEngine, nil
}

// initKeyMaterial decodes JWT_SECRET and AES_KEY. With KMS_KEY_URI set both values
// are KMS ciphertexts and are unwrapped through the keeper first.
func (c *Container) initKeyMaterial() (*cryptoDomain.KeyMaterial, error) {
	logger := c.Logger()

	var (
		km  *cryptoDomain.KeyMaterial
		err error
	)

	if c.config.KMSKeyURI != "" {
		km, err = c.unwrapKeyMaterial(context.Background())
	} else {
		km, err = cryptoDomain.LoadKeyMaterial(c.config.SigningSecret, c.config.EncryptionKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load key material: %w", err)
	}

	if km.WeakSigningSecret() {
		logger.Warn("signing secret is shorter than 32 bytes",
			slog.Int("min_recommended_bytes", cryptoDomain.MinStrongSigningSecretSize))
	}

	logger.Info("key material loaded", slog.Any("key_material", km), slog.Bool("kms", c.config.KMSKeyURI != ""))
	return km, nil
}

func (c *Container) unwrapKeyMaterial(ctx context.Context) (*cryptoDomain.KeyMaterial, error) {
	kmsService := c.KMSService()

	keeper, err := kmsService.OpenKeeper(ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyConfiguration, err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			c.Logger().Warn("failed to close kms keeper", slog.Any("error", closeErr))
		}
	}()

	return kmsService.UnwrapKeyMaterial(ctx, keeper, c.config.SigningSecret, c.config.EncryptionKey)
}

func (c *Container) initFieldCipher() (cryptoService.FieldCipher, error) {
	km, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for field cipher: %w", err)
	}

	key := km.EncryptionKey()
	defer cryptoDomain.Zero(key)

	return cryptoService.NewFieldCipher(key)
}

func (c *Container) initCredentialHasher() (cryptoService.CredentialHasher, error) {
	switch c.config.CredentialHasher {
	case config.CredentialHasherSHA256, "":
		return cryptoService.NewSHA256CredentialHasher(), nil
	case config.CredentialHasherArgon2id:
		return cryptoService.NewArgon2idCredentialHasher()
	default:
		return nil, fmt.Errorf("unsupported credential hasher: %s", c.config.CredentialHasher)
	}
}

func (c *Container) initTransformEngine() (*transform.Engine, error) {
	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for transform engine: %w", err)
	}

	hasher, err := c.CredentialHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential hasher for transform engine: %w", err)
	}

	return transform.NewEngine(cipher, hasher), nil
}
