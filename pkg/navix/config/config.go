// Package config loads navigator settings from file and environment.
// Settings cover only the tunable surface of the core (history bound,
// validation toggles, identity parameter, reserved routes, logging),
// not route tables, which live in routing sources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds navigator configuration.
type Settings struct {
	Navigation NavigationSettings
	Security   SecuritySettings
	Logging    LoggingSettings
}

// NavigationSettings tunes the navigation core.
type NavigationSettings struct {
	MaxHistory       int  `mapstructure:"max_history"`
	EnableValidation bool `mapstructure:"enable_validation"`
	EnableSecurity   bool `mapstructure:"enable_security"`
}

// SecuritySettings tunes the security gate.
type SecuritySettings struct {
	IdentityParam   string   `mapstructure:"identity_param"`
	ReservedRoutes  []string `mapstructure:"reserved_routes"`
	BlockedPatterns []string `mapstructure:"blocked_patterns"`
}

// LoggingSettings tunes the log output.
type LoggingSettings struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix NAVIX_; the config file is TOML, taken from NAVIX_CONFIG or
// ~/.config/navix/config.toml.
func Load() (Settings, error) {
	v := viper.New()

	// default values
	v.SetDefault("navigation.max_history", 50)
	v.SetDefault("navigation.enable_validation", true)
	v.SetDefault("navigation.enable_security", true)
	v.SetDefault("security.identity_param", "user_id")
	v.SetDefault("security.reserved_routes", []string{})
	v.SetDefault("security.blocked_patterns", []string{})
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("NAVIX_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "navix"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NAVIX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return s, nil
}

// Save writes the settings to disk, creating the config directory if
// needed.
func Save(s Settings) error {
	path := os.Getenv("NAVIX_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "navix", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("navigation.max_history", s.Navigation.MaxHistory)
	v.Set("navigation.enable_validation", s.Navigation.EnableValidation)
	v.Set("navigation.enable_security", s.Navigation.EnableSecurity)
	v.Set("security.identity_param", s.Security.IdentityParam)
	v.Set("security.reserved_routes", s.Security.ReservedRoutes)
	v.Set("security.blocked_patterns", s.Security.BlockedPatterns)
	v.Set("logging.path", s.Logging.Path)
	v.Set("logging.level", s.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
