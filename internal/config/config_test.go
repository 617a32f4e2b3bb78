package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, cfg.Store.Redact)
	cfg.Store.Redact = nil
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), `
format: yaml
scope: lab
store:
  backend: redis
  redis:
    addr: cache:6380
    db: 2
    ttl: 1h
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "lab", cfg.Scope)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6380", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Store.Redis.TTL)
	// untouched keys keep their defaults
	assert.Equal(t, "lineage:listing:", cfg.Store.Redis.Prefix)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".lineage"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte("scope: project\n"), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "project", cfg.Scope)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "scope: lab\nstore:\n  compress: false\n")
	t.Setenv("LINEAGE_SCOPE", "env")
	t.Setenv("LINEAGE_STORE_COMPRESS", "true")
	t.Setenv("LINEAGE_STORE_DIR", "/var/lib/lineage")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.Scope)
	assert.True(t, cfg.Store.Compress)
	assert.Equal(t, "/var/lib/lineage", cfg.Store.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "format: xml\nstore:\n  backend: s3\n")

	_, err := Load(viper.New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `format: unknown format "xml"`)
	assert.Contains(t, err.Error(), `store.backend: unknown backend "s3"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"cbor", func(c *Config) { c.Format = "CBOR" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
		{"bad redact pattern", func(c *Config) { c.Store.Redact = []string{"notes", "("} }, "store.redact"},
		{"empty scope", func(c *Config) { c.Scope = " " }, "scope: must not be empty"},
		{"file without dir", func(c *Config) { c.Store.Dir = "" }, "store.dir"},
		{"redis without addr", func(c *Config) {
			c.Store.Backend = BackendRedis
			c.Store.Redis.Addr = ""
		}, "store.redis.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
