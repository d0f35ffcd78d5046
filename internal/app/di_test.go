package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets/localsecrets"

	authDomain "github.com/cube/simple/internal/auth/domain"
	"github.com/cube/simple/internal/config"
	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
	"github.com/cube/simple/internal/metrics"
)

var (
	testSigningSecretB64 = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("k"), 32))
	testEncryptionKeyB64 = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 32))
)

func newTestConfig() *config.Config {
	return &config.Config{
		LogLevel:               "error",
		DBDriver:               "postgres",
		SigningSecret:          testSigningSecretB64,
		EncryptionKey:          testEncryptionKeyB64,
		AccessTokenExpiration:  20 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		CredentialHasher:       config.CredentialHasherSHA256,
		MetricsNamespace:       "simple_test",
	}
}

func TestNewContainer(t *testing.T) {
	cfg := newTestConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainer_Logger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			container := NewContainer(&config.Config{LogLevel: level})
			assert.Nil(t, container.logger)

			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainer_DBError(t *testing.T) {
	container := NewContainer(&config.Config{DBDriver: "invalid_driver", LogLevel: "error"})

	_, err := container.DB()
	assert.Error(t, err)

	_, err = container.DB()
	assert.Error(t, err, "the stored init error is returned on later calls")

	_, err = container.MemberRepository()
	assert.Error(t, err)
}

func TestContainer_KeyMaterial(t *testing.T) {
	t.Run("Base64", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		km, err := container.KeyMaterial()
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte("k"), 32), km.SigningSecret())
		assert.False(t, km.WeakSigningSecret())

		again, err := container.KeyMaterial()
		require.NoError(t, err)
		assert.Same(t, km, again)
	})

	t.Run("MissingSecretIsFatal", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.SigningSecret = ""
		container := NewContainer(cfg)

		_, err := container.KeyMaterial()
		assert.True(t, errors.Is(err, cryptoDomain.ErrKeyConfiguration))

		_, err = container.TokenService()
		assert.True(t, errors.Is(err, cryptoDomain.ErrKeyConfiguration))

		_, err = container.TransformEngine()
		assert.True(t, errors.Is(err, cryptoDomain.ErrKeyConfiguration))
	})

	t.Run("BadEncryptionKeyLength", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.EncryptionKey = base64.StdEncoding.EncodeToString(make([]byte, 20))
		container := NewContainer(cfg)

		_, err := container.KeyMaterial()
		assert.True(t, errors.Is(err, cryptoDomain.ErrKeyConfiguration))
	})

	t.Run("KMSUnwrap", func(t *testing.T) {
		ctx := context.Background()
		key, err := localsecrets.NewRandomKey()
		require.NoError(t, err)
		keyURI := "base64key://" + base64.URLEncoding.EncodeToString(key[:])

		wrapper := NewContainer(newTestConfig()).KMSService()
		keeper, err := wrapper.OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		defer func() { _ = keeper.Close() }()

		signingCT, err := wrapper.WrapSecret(ctx, keeper, bytes.Repeat([]byte("w"), 32))
		require.NoError(t, err)
		encryptionCT, err := wrapper.WrapSecret(ctx, keeper, bytes.Repeat([]byte{0x02}, 16))
		require.NoError(t, err)

		cfg := newTestConfig()
		cfg.KMSKeyURI = keyURI
		cfg.SigningSecret = signingCT
		cfg.EncryptionKey = encryptionCT
		container := NewContainer(cfg)

		km, err := container.KeyMaterial()
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte("w"), 32), km.SigningSecret())
		assert.Len(t, km.EncryptionKey(), 16)
	})

	t.Run("KMSWrongCiphertext", func(t *testing.T) {
		key, err := localsecrets.NewRandomKey()
		require.NoError(t, err)

		cfg := newTestConfig()
		cfg.KMSKeyURI = "base64key://" + base64.URLEncoding.EncodeToString(key[:])
		container := NewContainer(cfg)

		_, err = container.KeyMaterial()
		assert.True(t, errors.Is(err, cryptoDomain.ErrKeyConfiguration))
	})
}

func TestContainer_CredentialHasher(t *testing.T) {
	tests := []struct {
		name    string
		hasher  string
		wantErr bool
	}{
		{name: "default", hasher: ""},
		{name: "sha256", hasher: config.CredentialHasherSHA256},
		{name: "argon2id", hasher: config.CredentialHasherArgon2id},
		{name: "unknown", hasher: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.CredentialHasher = tt.hasher
			container := NewContainer(cfg)

			hasher, err := container.CredentialHasher()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			hash, err := hasher.Hash("password1")
			require.NoError(t, err)
			assert.True(t, hasher.Matches("password1", hash))
		})
	}
}

func TestContainer_TokenService(t *testing.T) {
	container := NewContainer(newTestConfig())

	tokens, err := container.TokenService()
	require.NoError(t, err)

	issued, err := tokens.IssueAccessToken("alice", authDomain.RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, authDomain.RoleAdmin, claims.Role)
}

func TestContainer_TransformEngine(t *testing.T) {
	container := NewContainer(newTestConfig())

	engine, err := container.TransformEngine()
	require.NoError(t, err)
	require.NotNil(t, engine)

	again, err := container.TransformEngine()
	require.NoError(t, err)
	assert.Same(t, engine, again)
}

func TestContainer_Singletons(t *testing.T) {
	container := NewContainer(newTestConfig())

	assert.Same(t, container.RoutePolicy(), container.RoutePolicy())
	assert.Same(t, container.Responder(), container.Responder())
	assert.NotNil(t, container.KMSService())
}

func TestContainer_Metrics(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)

		securityMetrics, err := container.SecurityMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpSecurityMetrics{}, securityMetrics)
		assert.Nil(t, container.metricsProvider)
	})

	t.Run("Enabled", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		_, err := container.BusinessMetrics()
		require.NoError(t, err)
		_, err = container.SecurityMetrics()
		require.NoError(t, err)
		assert.NotNil(t, container.metricsProvider)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, metricsServer.GetHandler())

		assert.NoError(t, container.Shutdown(context.Background()))
	})
}

func TestContainer_Shutdown(t *testing.T) {
	t.Run("NothingInitialized", func(t *testing.T) {
		container := NewContainer(newTestConfig())
		assert.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("ZeroesKeyMaterial", func(t *testing.T) {
		container := NewContainer(newTestConfig())
		km, err := container.KeyMaterial()
		require.NoError(t, err)

		require.NoError(t, container.Shutdown(context.Background()))
		assert.Empty(t, km.SigningSecret())
		assert.Empty(t, km.EncryptionKey())
	})
}
