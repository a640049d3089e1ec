// Package config loads settings from defaults, an optional
// shadow-journal.yaml, SHADOW_JOURNAL_* environment variables and bound
// command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/shadow-journal/internal/state"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "SHADOW_JOURNAL"

// Config is the resolved configuration.
type Config struct {
	DBPath   string  `mapstructure:"db"`
	LogLevel string  `mapstructure:"log_level"`
	Format   string  `mapstructure:"format"`
	Gateway  Gateway `mapstructure:"gateway"`
	Write    Write   `mapstructure:"write"`
}

// Gateway configures the AI endpoint.
type Gateway struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Strict  bool          `mapstructure:"strict"`
}

// Write configures the state write policy.
type Write struct {
	Policy   string        `mapstructure:"policy"`
	Interval time.Duration `mapstructure:"interval"`
}

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatYAML = "yaml"
)

// DefaultDBPath returns ~/.shadow-journal/journal.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".shadow-journal", "journal.db")
	}
	return filepath.Join(home, ".shadow-journal", "journal.db")
}

// SetDefaults registers every key so environment variables are seen by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", DefaultDBPath())
	v.SetDefault("log_level", "warn")
	v.SetDefault("format", FormatJSON)
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.api_key", "")
	v.SetDefault("gateway.timeout", time.Duration(0))
	v.SetDefault("gateway.strict", false)
	v.SetDefault("write.policy", state.WriteThrough.String())
	v.SetDefault("write.interval", state.DefaultFlushInterval)
}

// Load resolves configuration into a Config. configFile, when set, must
// exist; otherwise shadow-journal.yaml is looked up in ~/.shadow-journal
// and the working directory and skipped when absent.
func Load(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("shadow-journal")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".shadow-journal"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db path is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Format {
	case FormatJSON, FormatText, FormatYAML:
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if _, err := c.WritePolicy(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Gateway.Timeout < 0 {
		return fmt.Errorf("config: negative gateway timeout %s", c.Gateway.Timeout)
	}
	if c.Write.Interval < 0 {
		return fmt.Errorf("config: negative write interval %s", c.Write.Interval)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("config: %w", err)
	}
	return lvl, nil
}

// WritePolicy parses Write.Policy.
func (c Config) WritePolicy() (state.WritePolicy, error) {
	return state.ParseWritePolicy(c.Write.Policy)
}
