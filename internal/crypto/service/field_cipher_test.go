package service

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/cube/simple/internal/crypto/domain"
)

func newTestFieldCipher(t *testing.T, size int) FieldCipher {
	t.Helper()
	key, err := GenerateEncryptionKey(size)
	require.NoError(t, err)
	c, err := NewFieldCipher(key)
	require.NoError(t, err)
	return c
}

func TestNewFieldCipher(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
		wantErr bool
	}{
		{"16 byte key", 16, false},
		{"24 byte key", 24, false},
		{"32 byte key", 32, false},
		{"empty key", 0, true},
		{"8 byte key", 8, true},
		{"20 byte key", 20, true},
		{"48 byte key", 48, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFieldCipher(make([]byte, tt.keySize))
			if tt.wantErr {
				assert.ErrorIs(t, err, cryptoDomain.ErrKeyConfiguration)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestFieldCipher_RoundTrip(t *testing.T) {
	plaintexts := []string{
		"",
		"a",
		"010-1234-5678",
		"홍길동",
		strings.Repeat("long value ", 500),
	}

	for _, size := range []int{16, 24, 32} {
		c := newTestFieldCipher(t, size)
		for _, p := range plaintexts {
			envelope, err := c.Encrypt(p)
			require.NoError(t, err)

			decrypted, err := c.Decrypt(envelope)
			require.NoError(t, err)
			assert.Equal(t, p, decrypted)
		}
	}
}

func TestFieldCipher_EnvelopeLayout(t *testing.T) {
	c := newTestFieldCipher(t, 32)

	envelope, err := c.Encrypt("hello")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)
	assert.Len(t, raw, GCMNonceSize+len("hello")+GCMTagSize)
}

func TestFieldCipher_IVFreshness(t *testing.T) {
	c := newTestFieldCipher(t, 32)

	first, err := c.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := c.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	rawFirst, _ := base64.StdEncoding.DecodeString(first)
	rawSecond, _ := base64.StdEncoding.DecodeString(second)
	assert.False(t, bytes.Equal(rawFirst[:GCMNonceSize], rawSecond[:GCMNonceSize]))
}

func TestFieldCipher_TamperDetection(t *testing.T) {
	c := newTestFieldCipher(t, 32)

	envelope, err := c.Encrypt("secret-phone")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)

	for i := range raw {
		for bit := 0; bit < 8; bit++ {
			tampered := append([]byte(nil), raw...)
			tampered[i] ^= 1 << bit

			out, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
			require.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity, "byte %d bit %d", i, bit)
			require.Empty(t, out)
		}
	}
}

func TestFieldCipher_DecryptFailures(t *testing.T) {
	c := newTestFieldCipher(t, 32)

	envelope, err := c.Encrypt("value")
	require.NoError(t, err)
	raw, _ := base64.StdEncoding.DecodeString(envelope)

	t.Run("malformed base64", func(t *testing.T) {
		_, err := c.Decrypt("not*base64")
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
	})

	t.Run("empty envelope", func(t *testing.T) {
		_, err := c.Decrypt("")
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
	})

	t.Run("truncated envelope", func(t *testing.T) {
		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(raw[:GCMNonceSize+GCMTagSize-1]))
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
	})

	t.Run("tag removed", func(t *testing.T) {
		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(raw[:len(raw)-1]))
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTestFieldCipher(t, 32)
		_, err := other.Decrypt(envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
	})

	t.Run("key of different size", func(t *testing.T) {
		other := newTestFieldCipher(t, 16)
		_, err := other.Decrypt(envelope)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
	})
}

func TestFieldCipher_Nullable(t *testing.T) {
	c := newTestFieldCipher(t, 24)

	t.Run("nil passes through", func(t *testing.T) {
		enc, err := c.EncryptNullable(nil)
		require.NoError(t, err)
		assert.Nil(t, enc)

		dec, err := c.DecryptNullable(nil)
		require.NoError(t, err)
		assert.Nil(t, dec)
	})

	t.Run("value round trip", func(t *testing.T) {
		v := "010-0000-0000"
		enc, err := c.EncryptNullable(&v)
		require.NoError(t, err)
		require.NotNil(t, enc)
		assert.NotEqual(t, v, *enc)

		dec, err := c.DecryptNullable(enc)
		require.NoError(t, err)
		require.NotNil(t, dec)
		assert.Equal(t, v, *dec)
	})

	t.Run("tampered value", func(t *testing.T) {
		bad := "AAAA"
		dec, err := c.DecryptNullable(&bad)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoIntegrity)
		assert.Nil(t, dec)
	})
}

func TestGenerateEncryptionKey(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		key, err := GenerateEncryptionKey(size)
		require.NoError(t, err)
		assert.Len(t, key, size)
	}

	_, err := GenerateEncryptionKey(20)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
}

func TestGenerateSigningSecret(t *testing.T) {
	secret, err := GenerateSigningSecret(64)
	require.NoError(t, err)
	assert.Len(t, secret, 64)

	_, err = GenerateSigningSecret(0)
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
}
