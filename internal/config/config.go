// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/diploma-scanner/internal/extraction"
	"github.com/jonathan/diploma-scanner/internal/gallery"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DIPLOMA_GALLERY_OWNER.
const EnvPrefix = "DIPLOMA"

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the configuration loaded from an optional JSON or YAML
// file and DIPLOMA_* environment variables. Zero values mean "use the default".
type Config struct {
	// Document source
	Input    string `json:"input,omitempty" mapstructure:"input"`         // Path to a text or HTML file
	InputURL string `json:"input_url,omitempty" mapstructure:"input_url"` // URL to fetch the document from

	// Extraction
	LegacyFallbacks bool                `json:"legacy_fallbacks,omitempty" mapstructure:"legacy_fallbacks"`
	Defaults        extraction.Defaults `json:"defaults,omitempty" mapstructure:"defaults"`
	Patterns        extraction.Patterns `json:"patterns,omitempty" mapstructure:"patterns"`

	// Output
	Format  string `json:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=json yaml"`
	Verbose bool   `json:"verbose,omitempty" mapstructure:"verbose"`

	// Network
	FetchTimeout time.Duration  `json:"fetch_timeout,omitempty" mapstructure:"fetch_timeout" validate:"gte=0"`
	Gallery      gallery.Config `json:"gallery,omitempty" mapstructure:"gallery"`
	Server       ServerConfig   `json:"server,omitempty" mapstructure:"server"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `json:"port,omitempty" mapstructure:"port" validate:"gte=0,lte=65535"`
	GalleryCacheTTL time.Duration `json:"gallery_cache_ttl,omitempty" mapstructure:"gallery_cache_ttl" validate:"gte=0"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty" mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:       FormatJSON,
		FetchTimeout: 30 * time.Second,
		Defaults:     extraction.StandardDefaults(),
		Gallery:      gallery.DefaultConfig(),
		Server: ServerConfig{
			Port:            8080,
			GalleryCacheTTL: 10 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// setDefaults registers every scalar key so that environment overrides apply
// even when no config file mentions the key.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input", "")
	v.SetDefault("input_url", "")
	v.SetDefault("legacy_fallbacks", false)
	v.SetDefault("format", d.Format)
	v.SetDefault("verbose", false)
	v.SetDefault("fetch_timeout", d.FetchTimeout)
	v.SetDefault("gallery.owner", d.Gallery.Owner)
	v.SetDefault("gallery.api_base", d.Gallery.APIBase)
	v.SetDefault("gallery.raw_base", d.Gallery.RawBase)
	v.SetDefault("gallery.fetch_page_size", d.Gallery.FetchPageSize)
	v.SetDefault("gallery.concurrency", d.Gallery.Concurrency)
	v.SetDefault("gallery.max_pages", d.Gallery.MaxPages)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.gallery_cache_ttl", d.Server.GalleryCacheTTL)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
}

// Load reads configuration from path (JSON or YAML, chosen by extension) and
// DIPLOMA_* environment variables. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
		default:
			return nil, fmt.Errorf("failed to parse config %s: unsupported format", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Input != "" && c.InputURL != "" {
		return fmt.Errorf("config error: 'input' and 'input_url' are mutually exclusive")
	}

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", fieldPath(fe.Namespace()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := c.Patterns.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// fieldPath turns a validator namespace like "Config.Server.Port" into "server.port".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.InputURL == "" {
		result.InputURL = defaults.InputURL
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}

	// Duration fields: use default if zero
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.Server.GalleryCacheTTL == 0 {
		result.Server.GalleryCacheTTL = defaults.Server.GalleryCacheTTL
	}
	if result.Server.ShutdownTimeout == 0 {
		result.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}

	// Gallery fields
	if result.Gallery.Owner == "" {
		result.Gallery.Owner = defaults.Gallery.Owner
	}
	if result.Gallery.APIBase == "" {
		result.Gallery.APIBase = defaults.Gallery.APIBase
	}
	if result.Gallery.RawBase == "" {
		result.Gallery.RawBase = defaults.Gallery.RawBase
	}
	if result.Gallery.FetchPageSize == 0 {
		result.Gallery.FetchPageSize = defaults.Gallery.FetchPageSize
	}
	if result.Gallery.Concurrency == 0 {
		result.Gallery.Concurrency = defaults.Gallery.Concurrency
	}
	if result.Gallery.MaxPages == 0 {
		result.Gallery.MaxPages = defaults.Gallery.MaxPages
	}

	// Composite defaults: zero pairs keep the fallback table's entry
	result.Defaults = result.Defaults.Merge(defaults.Defaults)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
