package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = ".lockrelay"
	DefaultConfigFile = "config.json"
	DefaultDBFile     = ".lockrelay/lockrelay.db"

	DefaultPort = 8090
)

// ErrMissingKey marks a required configuration key that is absent.
// Validate wraps it with the key name; callers test with errors.Is.
var ErrMissingKey = errors.New("required configuration key missing")

// Load reads the config file (if present) and returns a populated Config.
// Environment variables override file values (DATABASE_DRIVER,
// GITHUB_WEBHOOK_SECRET, TELEGRAM_TOKEN, ...). The configPath flag may
// override the default location.
func Load(configPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
	}

	setDefaults(v, home)

	// AutomaticEnv only resolves keys viper already knows about, so the
	// secret-bearing keys without defaults are bound explicitly.
	for _, key := range []string{
		"database.dsn",
		"github.webhook_secret",
		"telegram.token",
		"telegram.webhook_secret",
		"reminder.schedule",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !isNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
		// No config file yet; env vars and defaults still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	expandPaths(&cfg, home)
	return &cfg, nil
}

// Save writes the config to disk as JSON.
func Save(cfg *Config, configPath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising config: %w", err)
	}

	return os.WriteFile(configPath, data, 0o600)
}

// ConfigPath returns the effective config file path.
func ConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Validate enforces the required-key contract. It reports every missing key
// at once rather than failing on the first, so a fresh deployment sees the
// whole shopping list.
func (c *Config) Validate() error {
	var missing []string
	if c.GitHub.WebhookSecret == "" {
		missing = append(missing, "github.webhook_secret")
	}
	if c.Telegram.Token == "" {
		missing = append(missing, "telegram.token")
	}
	if c.Telegram.WebhookSecret == "" {
		missing = append(missing, "telegram.webhook_secret")
	}
	if c.Database.Driver == "mysql" && c.Database.DSN == "" {
		missing = append(missing, "database.dsn")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingKey, strings.Join(missing, ", "))
	}
	return nil
}

// setDefaults populates viper with out-of-the-box values.
func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(home, DefaultDBFile))
	v.SetDefault("database.dsn", "")

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("reminder.schedule", "")
}

// expandPaths resolves ~ in configured paths.
func expandPaths(cfg *Config, home string) {
	cfg.Database.Path = expandHome(cfg.Database.Path, home)
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file")
}
