package config

import (
	"time"

	"github.com/zeromicro/go-zero/mcp"
	"github.com/zeromicro/go-zero/rest"
)

// Config holds the server configuration.
type Config struct {
	mcp.McpConf

	UI       UIConfig       `json:",optional"`
	API      APIConfig      `json:",optional"`
	Database DatabaseConfig `json:",optional"`
	Fonts    FontsConfig    `json:",optional"`
	Picker   PickerConfig   `json:",optional"`
	Sessions SessionsConfig `json:",optional"`
	Colors   ColorsConfig   `json:",optional"`
	Images   ImagesConfig   `json:",optional"`
	Export   ExportConfig   `json:",optional"`
	Warm     WarmConfig     `json:",optional"`
}

// UIConfig holds the Web UI server settings.
type UIConfig struct {
	rest.RestConf
}

// APIConfig holds the REST API server settings.
type APIConfig struct {
	rest.RestConf
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string `json:",default=./.data/plat-theme.db"`
}

// FontsConfig holds catalog and font cache settings.
type FontsConfig struct {
	Dir          string        `json:",default=./.data/fonts"`
	DirectoryURL string        `json:",optional"`
	APIKey       string        `json:",optional,env=GOOGLE_FONTS_API_KEY"`
	Timeout      time.Duration `json:",default=10s"`
	SansSerifCap int           `json:",default=200"`
	OtherCap     int           `json:",default=100"`
}

// PickerConfig holds font list rendering settings.
type PickerConfig struct {
	BatchSize int           `json:",default=25"`
	Debounce  time.Duration `json:",default=200ms"`
}

// SessionsConfig holds anonymous session settings.
type SessionsConfig struct {
	Cookie string        `json:",default=theme_session"`
	Expiry time.Duration `json:",default=24h"`
}

// ColorsConfig holds color preset settings.
type ColorsConfig struct {
	PresetFile string `json:",default=./etc/presets.yaml"`
	Watch      bool   `json:",default=true"`
}

// ImagesConfig holds image slot settings.
type ImagesConfig struct {
	Slots    []string `json:",optional"`
	MaxBytes int64    `json:",default=5242880"`
}

// ExportConfig holds component export settings.
type ExportConfig struct {
	Dir         string        `json:",default=./components"`
	Cache       bool          `json:",default=true"`
	CacheLimit  int           `json:",default=64"`
	CacheExpiry time.Duration `json:",default=10m"`
}

// WarmConfig holds font warm-up settings.
type WarmConfig struct {
	Enabled      bool          `json:",default=true"`
	Queue        string        `json:",default=warm"`
	Workers      int           `json:",default=2"`
	MaxRetries   int           `json:",default=3"`
	RetryBackoff time.Duration `json:",default=30s"`
	MaxBackoff   time.Duration `json:",default=30m"`
	RateLimit    int           `json:",default=120"`
}
