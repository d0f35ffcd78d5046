package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 20*time.Minute, cfg.AccessTokenExpiration)
				assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiration)
				assert.False(t, cfg.ErrorExposeDetail)
				assert.Equal(t, CredentialHasherSHA256, cfg.CredentialHasher)
				assert.True(t, cfg.RateLimitLoginEnabled)
				assert.Equal(t, 5.0, cfg.RateLimitLoginRequestsPerSec)
				assert.Equal(t, 10, cfg.RateLimitLoginBurst)
				assert.Equal(t, "simple", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom key and token configuration",
			envVars: map[string]string{
				"JWT_SECRET":                     "c2lnbmluZw==",
				"AES_KEY":                        "a2V5",
				"KMS_KEY_URI":                    "base64key://abc",
				"JWT_EXPIRATION_SECONDS":         "60",
				"JWT_REFRESH_EXPIRATION_SECONDS": "3600",
				"ERROR_EXPOSE_DETAIL":            "true",
				"CREDENTIAL_HASHER":              "argon2id",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "c2lnbmluZw==", cfg.SigningSecret)
				assert.Equal(t, "a2V5", cfg.EncryptionKey)
				assert.Equal(t, "base64key://abc", cfg.KMSKeyURI)
				assert.Equal(t, time.Minute, cfg.AccessTokenExpiration)
				assert.Equal(t, time.Hour, cfg.RefreshTokenExpiration)
				assert.True(t, cfg.ErrorExposeDetail)
				assert.Equal(t, CredentialHasherArgon2id, cfg.CredentialHasher)
			},
		},
		{
			name: "load custom cors and rate limit configuration",
			envVars: map[string]string{
				"CORS_ENABLED":                      "true",
				"CORS_ALLOW_ORIGINS":                "https://a.example,https://b.example",
				"RATE_LIMIT_LOGIN_ENABLED":          "false",
				"RATE_LIMIT_LOGIN_REQUESTS_PER_SEC": "2.5",
				"RATE_LIMIT_LOGIN_BURST":            "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.CORSEnabled)
				assert.Equal(t, "https://a.example,https://b.example", cfg.CORSAllowOrigins)
				assert.False(t, cfg.RateLimitLoginEnabled)
				assert.Equal(t, 2.5, cfg.RateLimitLoginRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitLoginBurst)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}

func TestFindDotEnv(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, ".env"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOTENV_PROBE=found\n"), 0o600))
	t.Chdir(nested)

	path, ok := findDotEnv()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".env"), path, "directories named .env are skipped")

	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_PROBE") })
	Load()
	assert.Equal(t, "found", os.Getenv("DOTENV_PROBE"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		t.Setenv("METRICS_ENABLED", "true")
		return Load()
	}

	t.Run("Defaults", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "sqlite" }, field: "DBDriver"},
		{name: "missing dsn", mutate: func(c *Config) { c.DBConnectionString = "" }, field: "DBConnectionString"},
		{name: "port out of range", mutate: func(c *Config) { c.ServerPort = 70000 }, field: "ServerPort"},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, field: "LogLevel"},
		{name: "sub-second access token", mutate: func(c *Config) { c.AccessTokenExpiration = time.Millisecond }, field: "AccessTokenExpiration"},
		{name: "zero refresh token", mutate: func(c *Config) { c.RefreshTokenExpiration = 0 }, field: "RefreshTokenExpiration"},
		{name: "unknown hasher", mutate: func(c *Config) { c.CredentialHasher = "md5" }, field: "CredentialHasher"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitLoginBurst = 0 }, field: "RateLimitLoginBurst"},
		{name: "zero metrics port", mutate: func(c *Config) { c.MetricsPort = 0 }, field: "MetricsPort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("RateLimitDisabledSkipsBucket", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimitLoginEnabled = false
		cfg.RateLimitLoginBurst = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("MetricsPortCollision", func(t *testing.T) {
		cfg := valid()
		cfg.MetricsPort = cfg.ServerPort
		assert.EqualError(t, cfg.Validate(), "METRICS_PORT must differ from SERVER_PORT")
	})
}
