// Package config loads chatstate runtime configuration from defaults,
// an optional config file, CHATSTATE_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/chatstate/internal/codec"
	"github.com/roach88/chatstate/internal/database"
)

const (
	envPrefix        = "CHATSTATE"
	defaultDriver    = database.DriverSQLite3
	defaultDSN       = "chatstate.db"
	defaultCodec     = "json"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Configuration keys. Flags bind to these.
const (
	KeyDatabaseDriver = "database.driver"
	KeyDatabaseDSN    = "database.dsn"
	KeyCodec          = "codec"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// AppConfig captures runtime configuration for the CLI.
type AppConfig struct {
	Database  database.Config
	Codec     string
	LogLevel  string
	LogFormat string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
// CHATSTATE_DATABASE_DSN overrides database.dsn, and so on.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault(KeyDatabaseDriver, defaultDriver)
	configViper.SetDefault(KeyDatabaseDSN, defaultDSN)
	configViper.SetDefault(KeyCodec, defaultCodec)
	configViper.SetDefault(KeyLogLevel, defaultLogLevel)
	configViper.SetDefault(KeyLogFormat, defaultLogFormat)
}

// ReadFile merges the config file at path into configViper. An empty path is
// a no-op.
func ReadFile(configViper *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	configViper.SetConfigFile(path)
	if err := configViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		Database: database.Config{
			Driver: configViper.GetString(KeyDatabaseDriver),
			DSN:    configViper.GetString(KeyDatabaseDSN),
		},
		Codec:     configViper.GetString(KeyCodec),
		LogLevel:  strings.ToLower(configViper.GetString(KeyLogLevel)),
		LogFormat: strings.ToLower(configViper.GetString(KeyLogFormat)),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if _, err := database.DialectFor(c.Database.Driver); err != nil {
		return fmt.Errorf("%s: %w", KeyDatabaseDriver, err)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("%s is required", KeyDatabaseDSN)
	}
	if _, err := codec.ByName(c.Codec); err != nil {
		return fmt.Errorf("%s: %w", KeyCodec, err)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%s must be one of %v, got %q", KeyLogLevel, logLevels, c.LogLevel)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("%s must be one of %v, got %q", KeyLogFormat, logFormats, c.LogFormat)
	}
	return nil
}
