package config

import (
	"time"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
)

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			RequestTimeout: 30 * time.Second,
		},
		Grid: GridConfig{
			ContainerSize: 600,
			Padding:       24,
			Gap:           12,
			GlobeRadius:   220,
		},
		Camera: CameraConfig{
			WheelSensitivity: 0.001,
			PinchSensitivity: 0.005,
		},
		AI: AIConfig{
			Provider:  ProviderOpenAI,
			Model:     "gpt-4o-mini",
			Timeout:   20 * time.Second,
			MaxTokens: 1024,
		},
		Store: StoreConfig{
			Path: "districtmap.db",
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
		I18n: I18nConfig{
			DefaultLanguage: "en",
		},
		District: DistrictConfig{
			Seed: "district.yaml",
		},
	}
}
