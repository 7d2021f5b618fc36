package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Empty(t, cfg.RedisAddr)
	assert.NotEmpty(t, cfg.DatabaseDSN)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ADDRESS", ":7070")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}

func TestParseEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("BCRYPT_COST", "high")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr_http": ":6060",
		"secret_key": "json-secret",
		"session_ttl": "2h",
		"redis_addr": "redis:6379"
	}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	// untouched fields keep defaults
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "media", cfg.S3Bucket)
}

func TestParseJson_NoFileFlagIsNoop(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)

	assert.Equal(t, before, *cfg)
}
