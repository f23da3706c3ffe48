// Package config loads districtmap settings: defaults, then an optional
// YAML file, then DISTRICTMAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. Nested keys are separated
// by a double underscore: DISTRICTMAP_SERVER__ADDR sets server.addr.
const EnvPrefix = "DISTRICTMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// The conventional variable is honoured when no key is configured.
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

// EnvKey maps DISTRICTMAP_AI__API_KEY to ai.api_key.
func EnvKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to path as YAML. The API key is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.AI.APIKey = ""
	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderNone:   true,
}

var validFormats = map[string]bool{"json": true, "console": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must be non-negative"))
	}

	g := c.Grid
	if g.ContainerSize <= 0 {
		errs = append(errs, errors.New("grid.container_size must be positive"))
	}
	if g.Padding < 0 || g.Gap < 0 {
		errs = append(errs, errors.New("grid.padding and grid.gap must be non-negative"))
	}
	if 2*g.Padding >= g.ContainerSize {
		errs = append(errs, fmt.Errorf("grid.padding %.1f leaves no room in a %.1f container", g.Padding, g.ContainerSize))
	}
	if g.GlobeRadius <= 0 {
		errs = append(errs, errors.New("grid.globe_radius must be positive"))
	}

	if c.Camera.WheelSensitivity <= 0 || c.Camera.PinchSensitivity <= 0 {
		errs = append(errs, errors.New("camera sensitivities must be positive"))
	}

	if !validProviders[c.AI.Provider] {
		errs = append(errs, fmt.Errorf("invalid ai.provider %q: must be one of openai, none", c.AI.Provider))
	}
	if c.AI.Provider == ProviderOpenAI && c.AI.Model == "" {
		errs = append(errs, errors.New("ai.model is required"))
	}
	if c.AI.MaxTokens < 0 {
		errs = append(errs, errors.New("ai.max_tokens must be non-negative"))
	}

	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if c.Log.Format != "" && !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Errorf("invalid log.format %q: must be json or console", c.Log.Format))
	}
	if c.I18n.DefaultLanguage == "" {
		errs = append(errs, errors.New("i18n.default_language is required"))
	}

	return errors.Join(errs...)
}

// AIEnabled reports whether the AI collaborators can be constructed.
func (c *Config) AIEnabled() bool {
	return c.AI.Provider == ProviderOpenAI && c.AI.APIKey != ""
}
