package font

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joeblew999/plat-theme/pkg/config"
	"github.com/joeblew999/plat-theme/pkg/log"
)

// Font identifies one downloadable face of a family.
type Font struct {
	Family string
	Weight int    // 100..900
	Style  string // normal, italic
	Format string // woff2, ttf
}

// FontInfo contains metadata about a cached font file.
type FontInfo struct {
	Font
	Path     string    `json:"path"`
	CDNURL   string    `json:"cdn_url,omitempty"`
	Size     int64     `json:"size"`
	CachedAt time.Time `json:"cached_at"`
}

// Manager keeps a local cache of font files for the families users pick.
type Manager struct {
	cacheDir string
	registry *Registry
	client   *http.Client
}

func newFont(family string, weight int, format string) Font {
	return Font{
		Family: family,
		Weight: weight,
		Style:  DefaultFontStyle,
		Format: format,
	}
}

// NewManager creates a manager using the environment's font path.
func NewManager() *Manager {
	return NewManagerWithDir(config.GetFontPath())
}

// NewManagerWithDir creates a manager caching under dir.
func NewManagerWithDir(dir string) *Manager {
	return &Manager{
		cacheDir: dir,
		registry: NewRegistryAt(filepath.Join(dir, RegistryFilename)),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Dir returns the cache directory.
func (m *Manager) Dir() string {
	return m.cacheDir
}

// Cache makes sure a family/weight is present in the local cache.
func (m *Manager) Cache(ctx context.Context, family string, weight int) error {
	_, err := m.Get(ctx, family, weight)
	return err
}

// Get returns the cached file info, downloading the file if necessary.
func (m *Manager) Get(ctx context.Context, family string, weight int) (FontInfo, error) {
	f := newFont(family, weight, DefaultFontFormat)
	if info, ok := m.registry.GetInfo(f); ok {
		return info, nil
	}
	return m.cacheFont(ctx, f)
}

// Available reports whether a family/weight is already cached.
func (m *Manager) Available(family string, weight int) bool {
	_, ok := m.registry.GetInfo(newFont(family, weight, DefaultFontFormat))
	return ok
}

// List returns all cached fonts.
func (m *Manager) List() []FontInfo {
	return m.registry.List()
}

func (m *Manager) cacheFont(ctx context.Context, f Font) (FontInfo, error) {
	familyDir := config.GetFontPathForFamily(m.cacheDir, f.Family)
	if err := os.MkdirAll(familyDir, 0o755); err != nil {
		return FontInfo{}, fmt.Errorf("failed to create font directory: %w", err)
	}
	path := filepath.Join(familyDir, fmt.Sprintf("%d.%s", f.Weight, f.Format))

	cdnURL, size, err := downloadGoogleFont(ctx, m.client, f, path)
	if err != nil {
		return FontInfo{}, fmt.Errorf("failed to download font %s %d: %w", f.Family, f.Weight, err)
	}

	info := FontInfo{
		Font:     f,
		Path:     path,
		CDNURL:   cdnURL,
		Size:     size,
		CachedAt: time.Now(),
	}
	if err := m.registry.Add(info); err != nil {
		log.Warn("Failed to register font", "family", f.Family, "weight", f.Weight, "error", err)
	}
	return info, nil
}
