package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const fileName = ".collegedir"

// Config represents the application configuration. It never carries
// session data; a session only lives as long as the shell that created it.
type Config struct {
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Format       FormatConfig       `yaml:"format" mapstructure:"format"`
	Validation   ValidationConfig   `yaml:"validation" mapstructure:"validation"`
	Registration RegistrationConfig `yaml:"registration" mapstructure:"registration"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// ServerConfig contains directory API connection settings
type ServerConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	Timeout string `yaml:"timeout" mapstructure:"timeout"`
}

// FormatConfig contains output formatting settings
type FormatConfig struct {
	Default string `yaml:"default" mapstructure:"default"`
	Colors  bool   `yaml:"colors" mapstructure:"colors"`
}

// ValidationConfig selects the password and username policy
type ValidationConfig struct {
	Policy string `yaml:"policy" mapstructure:"policy"`
}

// RegistrationConfig contains the registration page's gates
type RegistrationConfig struct {
	RequireOTP          bool  `yaml:"require_otp" mapstructure:"require_otp"`
	RequireProfileImage bool  `yaml:"require_profile_image" mapstructure:"require_profile_image"`
	ImageMinKB          int64 `yaml:"image_min_kb" mapstructure:"image_min_kb"`
	ImageMaxKB          int64 `yaml:"image_max_kb" mapstructure:"image_max_kb"`
}

// LogConfig controls the diagnostic log written to stderr
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

var (
	globalConfig *Config
	debug        bool
	outputFormat string
)

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8080",
			Timeout: "30s",
		},
		Format: FormatConfig{
			Default: "table",
			Colors:  true,
		},
		Validation: ValidationConfig{
			Policy: "basic",
		},
		Registration: RegistrationConfig{
			RequireOTP: true,
			ImageMinKB: 30,
			ImageMaxKB: 500,
		},
		Log: LogConfig{
			Level:  "off",
			Format: "text",
		},
	}
}

// Initialize loads the configuration from file
func Initialize(configFile string) error {
	v := viper.GetViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(fileName)
	}

	v.SetEnvPrefix("COLLEGEDIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run; write the defaults so users have something to edit
			if err := createDefaultConfig(); err != nil {
				return fmt.Errorf("could not create default config: %w", err)
			}
		} else {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("could not unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	globalConfig = cfg
	return nil
}

// setDefaults mirrors Default so env-only setups still see every key
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("format.default", d.Format.Default)
	v.SetDefault("format.colors", d.Format.Colors)
	v.SetDefault("validation.policy", d.Validation.Policy)
	v.SetDefault("registration.require_otp", d.Registration.RequireOTP)
	v.SetDefault("registration.require_profile_image", d.Registration.RequireProfileImage)
	v.SetDefault("registration.image_min_kb", d.Registration.ImageMinKB)
	v.SetDefault("registration.image_max_kb", d.Registration.ImageMaxKB)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// DefaultPath returns where the configuration file lives by default
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fileName+".yaml"), nil
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url must not be empty")
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Registration.ImageMinKB > c.Registration.ImageMaxKB {
		return fmt.Errorf("registration.image_min_kb (%d) exceeds image_max_kb (%d)",
			c.Registration.ImageMinKB, c.Registration.ImageMaxKB)
	}
	return nil
}

// Timeout parses server.timeout
func (c *Config) Timeout() (time.Duration, error) {
	if c.Server.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid server.timeout %q: %w", c.Server.Timeout, err)
	}
	return d, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		globalConfig = Default()
	}
	return globalConfig
}

// Set replaces the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}

// ConfigFileUsed returns the file viper read, if any
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// SetDebug sets the debug mode
func SetDebug(enabled bool) {
	debug = enabled
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	return debug
}

// SetOutputFormat sets the output format
func SetOutputFormat(format string) {
	outputFormat = format
}

// GetOutputFormat returns the current output format
func GetOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if globalConfig != nil && globalConfig.Format.Default != "" {
		return globalConfig.Format.Default
	}
	return "table"
}
