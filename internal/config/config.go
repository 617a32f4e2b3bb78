// Package config holds the settings of the lineage CLI and loads them through viper
// from defaults, an optional YAML file, LINEAGE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aretw0/lineage/internal/logging"
	"github.com/aretw0/lineage/pkg/codec"
	"github.com/aretw0/lineage/pkg/flatten"
)

// DefaultPath is the project-local config file read when no --config is given.
const DefaultPath = ".lineage/config.yaml"

// EnvPrefix prefixes every environment override, e.g. LINEAGE_STORE_BACKEND.
const EnvPrefix = "LINEAGE"

// Store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all configuration options for lineage.
type Config struct {
	Format   string      `mapstructure:"format"`
	Scope    string      `mapstructure:"scope"`
	LogLevel string      `mapstructure:"log_level"`
	Store    StoreConfig `mapstructure:"store"`
}

// StoreConfig selects and configures the listing store.
type StoreConfig struct {
	Backend  string      `mapstructure:"backend"` // "file" (default) or "redis"
	Dir      string      `mapstructure:"dir"`
	Compress bool        `mapstructure:"compress"`
	Redact   []string    `mapstructure:"redact"` // attribute name patterns masked on save
	Redis    RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the connection settings of the redis backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"` // 0 keeps listings forever
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Format:   string(codec.JSON),
		Scope:    flatten.DefaultScope,
		LogLevel: "warn",
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".lineage/listings",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "lineage:listing:",
			},
		},
	}
}

// SetDefaults registers every key of Defaults on v. Keys must be known to viper
// for environment variables to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("format", d.Format)
	v.SetDefault("scope", d.Scope)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.dir", d.Store.Dir)
	v.SetDefault("store.compress", d.Store.Compress)
	v.SetDefault("store.redact", d.Store.Redact)
	v.SetDefault("store.redis.addr", d.Store.Redis.Addr)
	v.SetDefault("store.redis.password", d.Store.Redis.Password)
	v.SetDefault("store.redis.db", d.Store.Redis.DB)
	v.SetDefault("store.redis.prefix", d.Store.Redis.Prefix)
	v.SetDefault("store.redis.ttl", d.Store.Redis.TTL)
}

// Load reads the configuration into a Config. path names an explicit config file;
// when empty, DefaultPath is used if it exists. A missing DefaultPath is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a command relies on.
func (c Config) Validate() error {
	var errs []error
	if _, err := codec.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if strings.TrimSpace(c.Scope) == "" {
		errs = append(errs, errors.New("scope: must not be empty"))
	}
	for _, p := range c.Store.Redact {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("store.redact: %w", err))
		}
	}
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Dir == "" {
			errs = append(errs, errors.New("store.dir: required for the file backend"))
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr: required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
