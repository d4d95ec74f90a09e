// Package export renders preview components with a session's theme into
// standalone HTML through MJML.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeblew999/plat-theme/pkg/log"
	"github.com/preslavrachev/gomjml/mjml"
	"github.com/zeromicro/go-zero/core/collection"
)

const (
	defaultCacheLimit  = 64
	defaultCacheExpiry = 10 * time.Minute
)

// Renderer loads MJML component templates and renders them to HTML.
type Renderer struct {
	templates map[string]*template.Template
	cache     *collection.Cache
	mu        sync.RWMutex
	options   *RenderOptions
	renders   atomic.Int64

	// generation is part of every cache key, so reloading templates
	// retires earlier renders.
	generation int
}

// RenderOptions configures the renderer.
type RenderOptions struct {
	EnableCache bool          // Cache rendered HTML by component and data
	EnableDebug bool          // Add gomjml debug attributes
	CacheLimit  int           // Most cached renders kept, least recently used go first
	CacheExpiry time.Duration // Lifetime of a cached render
}

// RendererOption configures the renderer
type RendererOption func(*RenderOptions)

// WithCache enables HTML output caching.
func WithCache(enabled bool) RendererOption {
	return func(opts *RenderOptions) {
		opts.EnableCache = enabled
	}
}

// WithCacheLimit bounds the cached renders.
func WithCacheLimit(n int) RendererOption {
	return func(opts *RenderOptions) {
		if n > 0 {
			opts.CacheLimit = n
		}
	}
}

// WithCacheExpiry sets how long a cached render lives.
func WithCacheExpiry(d time.Duration) RendererOption {
	return func(opts *RenderOptions) {
		if d > 0 {
			opts.CacheExpiry = d
		}
	}
}

// WithDebug adds debug attributes to generated HTML.
func WithDebug(enabled bool) RendererOption {
	return func(opts *RenderOptions) {
		opts.EnableDebug = enabled
	}
}

// NewRenderer creates a renderer without templates.
func NewRenderer(opts ...RendererOption) *Renderer {
	options := &RenderOptions{CacheLimit: defaultCacheLimit, CacheExpiry: defaultCacheExpiry}
	for _, opt := range opts {
		opt(options)
	}
	r := &Renderer{
		templates: make(map[string]*template.Template),
		options:   options,
	}
	r.cache = r.newCache()
	return r
}

// newCache returns nil when caching is off or the cache cannot be built.
func (r *Renderer) newCache() *collection.Cache {
	if !r.options.EnableCache {
		return nil
	}
	c, err := collection.NewCache(r.options.CacheExpiry,
		collection.WithLimit(r.options.CacheLimit), collection.WithName("export-renders"))
	if err != nil {
		log.Warn("Export render cache disabled", "error", err)
		return nil
	}
	return c
}

// LoadTemplate parses one component template.
func (r *Renderer) LoadTemplate(name, content string) error {
	tmpl, err := template.New(name).Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = tmpl
	r.generation++
	return nil
}

// LoadTemplatesFromFS loads every .mjml file of fsys, named after the file.
func (r *Renderer) LoadTemplatesFromFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".mjml") {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}
		return r.LoadTemplate(strings.TrimSuffix(path.Base(p), ".mjml"), string(content))
	})
}

// LoadTemplatesFromDir loads overrides from a directory on disk. A missing
// directory is not an error.
func (r *Renderer) LoadTemplatesFromDir(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return r.LoadTemplatesFromFS(os.DirFS(dir))
}

// Render executes a component template and converts the MJML to HTML.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	tmpl, exists := r.templates[name]
	generation := r.generation
	r.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}

	cache := r.cache
	var cacheKey string
	if cache != nil {
		key, err := createCacheKey(name, generation, data)
		if err != nil {
			return "", err
		}
		cacheKey = key
		if cached, found := cache.Get(cacheKey); found {
			return cached.(string), nil
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	html, err := r.RenderString(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to render MJML for template %s: %w", name, err)
	}
	r.renders.Add(1)

	if cache != nil {
		cache.Set(cacheKey, html)
	}
	return html, nil
}

// RenderString converts MJML markup to HTML.
func (r *Renderer) RenderString(content string) (string, error) {
	var opts []mjml.RenderOption
	if r.options.EnableDebug {
		opts = append(opts, mjml.WithDebugTags(true))
	}
	if r.options.EnableCache {
		opts = append(opts, mjml.WithCache())
	}

	html, err := mjml.Render(content, opts...)
	if err != nil {
		return "", fmt.Errorf("gomjml render failed: %w", err)
	}
	return html, nil
}

// Templates lists the loaded component names, sorted.
func (r *Renderer) Templates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasTemplate reports whether a component is loaded.
func (r *Renderer) HasTemplate(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// Renders counts the MJML conversions done, cache hits excluded.
func (r *Renderer) Renders() int64 {
	return r.renders.Load()
}

func createCacheKey(name string, generation int, data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize data for caching: %w", err)
	}
	sum := sha256.Sum256(append([]byte(name), raw...))
	return fmt.Sprintf("%s_%d_%x", name, generation, sum[:8]), nil
}
