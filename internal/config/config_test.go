package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_AUDIENCE", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mybookshelf-api", cfg.JWT.Issuer)
	assert.Equal(t, "mybookshelf-client", cfg.JWT.Audience)
	assert.Equal(t, 60*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORS.AllowedOrigins)
}

func TestLoadTTLFallsBackWhenUnparsable(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, raw := range []string{"abc", "-5", "0"} {
		t.Setenv("JWT_TTL_MINUTES", raw)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 60*time.Minute, cfg.JWT.TTL, "JWT_TTL_MINUTES=%s", raw)
	}
}

func TestLoadCustomTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
}

func TestParseCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseCSV(" a , b ,"))
	assert.Nil(t, parseCSV(" , "))
}
