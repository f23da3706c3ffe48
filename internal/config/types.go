package config

import (
	"time"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
)

// ProviderType identifies the AI backend.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	// ProviderNone disables the AI collaborators; search and analysis
	// degrade to their fallbacks.
	ProviderNone ProviderType = "none"
)

// Config is the top-level districtmap configuration, corresponding to
// districtmap.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Grid     GridConfig     `yaml:"grid" koanf:"grid"`
	Camera   CameraConfig   `yaml:"camera" koanf:"camera"`
	AI       AIConfig       `yaml:"ai" koanf:"ai"`
	Store    StoreConfig    `yaml:"store" koanf:"store"`
	Log      logging.Config `yaml:"log" koanf:"log"`
	I18n     I18nConfig     `yaml:"i18n" koanf:"i18n"`
	District DistrictConfig `yaml:"district" koanf:"district"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
}

// GridConfig holds the flat-layout geometry. Columns and rows come from the
// district itself.
type GridConfig struct {
	ContainerSize float64 `yaml:"container_size" koanf:"container_size"`
	Padding       float64 `yaml:"padding" koanf:"padding"`
	Gap           float64 `yaml:"gap" koanf:"gap"`
	GlobeRadius   float64 `yaml:"globe_radius" koanf:"globe_radius"`
}

// CameraConfig holds gesture sensitivities.
type CameraConfig struct {
	WheelSensitivity float64 `yaml:"wheel_sensitivity" koanf:"wheel_sensitivity"`
	PinchSensitivity float64 `yaml:"pinch_sensitivity" koanf:"pinch_sensitivity"`
}

// AIConfig selects and configures the AI collaborator.
type AIConfig struct {
	Provider  ProviderType  `yaml:"provider" koanf:"provider"`
	Model     string        `yaml:"model" koanf:"model"`
	APIKey    string        `yaml:"api_key,omitempty" koanf:"api_key"`
	BaseURL   string        `yaml:"base_url,omitempty" koanf:"base_url"`
	Timeout   time.Duration `yaml:"timeout" koanf:"timeout"`
	MaxTokens int           `yaml:"max_tokens" koanf:"max_tokens"`
}

// StoreConfig points at the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// I18nConfig holds localization settings.
type I18nConfig struct {
	DefaultLanguage string `yaml:"default_language" koanf:"default_language"`
	// Dir optionally overrides the embedded catalogs with <lang>.yaml files.
	Dir string `yaml:"dir,omitempty" koanf:"dir"`
}

// DistrictConfig locates the seed snapshot.
type DistrictConfig struct {
	Seed  string `yaml:"seed" koanf:"seed"`
	Watch bool   `yaml:"watch" koanf:"watch"`
}
