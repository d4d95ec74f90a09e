package font

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry persists metadata about cached font files as JSON.
type Registry struct {
	mu   sync.Mutex
	path string
	data map[string]FontInfo
}

// NewRegistryAt loads (or starts) the registry stored at path.
func NewRegistryAt(path string) *Registry {
	r := &Registry{
		path: path,
		data: make(map[string]FontInfo),
	}
	r.load()
	return r
}

// GetInfo returns the entry for a font. Entries whose file disappeared are
// dropped on lookup.
func (r *Registry) GetInfo(f Font) (FontInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(f)
	info, ok := r.data[k]
	if !ok {
		return FontInfo{}, false
	}
	if _, err := os.Stat(info.Path); os.IsNotExist(err) {
		delete(r.data, k)
		_ = r.saveLocked()
		return FontInfo{}, false
	}
	return info, true
}

// Add registers a font.
func (r *Registry) Add(info FontInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key(info.Font)] = info
	return r.saveLocked()
}

// Remove drops a font from the registry.
func (r *Registry) Remove(f Font) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key(f))
	return r.saveLocked()
}

// List returns all entries ordered by key.
func (r *Registry) List() []FontInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]FontInfo, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.data[k])
	}
	return out
}

// key is e.g. "open-sans-400-normal-ttf".
func key(f Font) string {
	family := strings.ToLower(strings.Join(strings.Fields(f.Family), "-"))
	return fmt.Sprintf("%s-%d-%s-%s", family, f.Weight, f.Style, f.Format)
}

func (r *Registry) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return // not written yet
	}
	var entries map[string]FontInfo
	if err := json.Unmarshal(data, &entries); err != nil {
		return // corrupt registry, start fresh
	}
	r.data = entries
}

func (r *Registry) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create font directory: %w", err)
	}
	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	return os.WriteFile(r.path, data, 0o644)
}
