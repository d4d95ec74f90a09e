// Package config provides path and endpoint defaults shared by the theme packages.
package config

import (
	"os"
	"path/filepath"
)

// GetDataPath returns the data directory path.
// It checks for DATA_PATH environment variable, otherwise uses a default.
func GetDataPath() string {
	if path := os.Getenv("DATA_PATH"); path != "" {
		return path
	}

	// Default to current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return filepath.Join(cwd, ".data")
}

// GetFontPath returns the font cache directory path.
// It checks for FONT_PATH environment variable, otherwise uses a default.
func GetFontPath() string {
	if path := os.Getenv("FONT_PATH"); path != "" {
		return path
	}

	return filepath.Join(GetDataPath(), "fonts")
}

// GetFontPathForFamily returns the cache directory for one font family.
func GetFontPathForFamily(base, family string) string {
	if base == "" {
		base = GetFontPath()
	}
	return filepath.Join(base, family)
}

// GetDatabasePath returns the SQLite database path.
// It checks for THEME_DB_PATH environment variable, otherwise uses a default.
func GetDatabasePath() string {
	if path := os.Getenv("THEME_DB_PATH"); path != "" {
		return path
	}

	return filepath.Join(GetDataPath(), "plat-theme.db")
}

// GetFontsAPIKey returns the Google Fonts Web API key, if one is configured.
func GetFontsAPIKey() string {
	return os.Getenv("GOOGLE_FONTS_API_KEY")
}
