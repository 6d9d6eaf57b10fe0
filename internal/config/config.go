package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Backends accepted by store.backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBolt   = "bolt"
)

// Config holds application configuration.
type Config struct {
	Log    LogConfig
	Engine EngineConfig
	Store  StoreConfig
	HTTP   HTTPConfig
	UI     UIConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
	// File, when set, additionally receives JSON logs.
	File string
}

// EngineConfig holds run settings shared by every frontend.
type EngineConfig struct {
	MaxSteps      int    `mapstructure:"max_steps"`
	MaxTraceSteps int    `mapstructure:"max_trace_steps"`
	BlankAlias    string `mapstructure:"blank_alias"`
}

// StoreConfig selects and configures the machine library.
type StoreConfig struct {
	Backend string
	Path    string
	Redis   RedisConfig
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Port int
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Color bool
}

// Load reads configuration from file and env. Env var overrides use prefix TURING_,
// e.g. TURING_ENGINE_MAX_STEPS. An explicit path must exist; otherwise the file
// named by TURING_CONFIG or $HOME/.config/turing/config.yaml is used when present.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("engine.max_steps", 10_000)
	v.SetDefault("engine.max_trace_steps", 1_000)
	v.SetDefault("engine.blank_alias", "blank")
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.path", filepath.Join(".turing", "machines"))
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "turing:")
	v.SetDefault("http.port", 8080)
	v.SetDefault("ui.color", true)

	v.SetConfigType("yaml")

	explicit := path != ""
	if !explicit {
		path = os.Getenv("TURING_CONFIG")
		explicit = path != ""
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "turing"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TURING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendBolt:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Engine.MaxSteps < 0 {
		return fmt.Errorf("engine.max_steps must not be negative, got %d", c.Engine.MaxSteps)
	}
	if c.Engine.MaxTraceSteps < 0 {
		return fmt.Errorf("engine.max_trace_steps must not be negative, got %d", c.Engine.MaxTraceSteps)
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.HTTP.Port)
	}
	return nil
}
