package typography

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Element is a preview element styled by one role.
type Element struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	// NaturalSize is the unscaled font size in pixels.
	NaturalSize float64 `json:"naturalSize"`
	// FixedSpacing elements keep their own line height and letter spacing.
	FixedSpacing bool `json:"fixedSpacing,omitempty"`
}

// DefaultElements is the preview markup of the customizer page.
func DefaultElements() []Element {
	return []Element{
		{ID: "hero-title", Role: Heading, NaturalSize: 48},
		{ID: "section-title", Role: Heading, NaturalSize: 32},
		{ID: "card-title", Role: Heading, NaturalSize: 20},
		{ID: "hero-text", Role: Body, NaturalSize: 18},
		{ID: "card-text", Role: Body, NaturalSize: 16},
		{ID: "caption", Role: Body, NaturalSize: 14, FixedSpacing: true},
	}
}

// Registry maps roles to their preview elements. It is filled when the page
// is composed and only read afterwards.
type Registry struct {
	mu     sync.RWMutex
	byRole map[Role][]Element
	byID   map[string]Element
}

// NewRegistry creates a registry holding elems.
func NewRegistry(elems ...Element) (*Registry, error) {
	r := &Registry{
		byRole: make(map[Role][]Element),
		byID:   make(map[string]Element),
	}
	for _, e := range elems {
		if err := r.Register(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error.
func MustNewRegistry(elems ...Element) *Registry {
	r, err := NewRegistry(elems...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds an element.
func (r *Registry) Register(e Element) error {
	if _, err := ParseRole(string(e.Role)); err != nil {
		return err
	}
	if e.ID == "" || e.NaturalSize <= 0 {
		return fmt.Errorf("invalid preview element %q", e.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[e.ID]; ok {
		return fmt.Errorf("duplicate preview element %q", e.ID)
	}
	r.byID[e.ID] = e
	r.byRole[e.Role] = append(r.byRole[e.Role], e)
	return nil
}

// ForRole returns the elements of a role in registration order.
func (r *Registry) ForRole(role Role) []Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byRole[role])
}

// Lookup finds an element by id.
func (r *Registry) Lookup(id string) (Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	return e, ok
}

// Baselines remembers the unscaled size of each element. A size is captured
// the first time it is needed and reused until invalidated, so scaling never
// compounds.
type Baselines struct {
	mu    sync.Mutex
	sizes map[string]float64
}

// NewBaselines creates an empty cache.
func NewBaselines() *Baselines {
	return &Baselines{sizes: make(map[string]float64)}
}

// Capture returns the baseline of e, recording NaturalSize on first use.
func (b *Baselines) Capture(e Element) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if size, ok := b.sizes[e.ID]; ok {
		return size
	}
	b.sizes[e.ID] = e.NaturalSize
	return e.NaturalSize
}

// Invalidate forgets the baseline of an element. Font changes do not call
// it; the captured size survives a family switch.
func (b *Baselines) Invalidate(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sizes, id)
}

// Captured reports whether id has a baseline.
func (b *Baselines) Captured(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.sizes[id]
	return ok
}

// ElementStyle is the computed style of a preview element.
type ElementStyle struct {
	ID              string  `json:"id"`
	Role            Role    `json:"role"`
	FontFamily      string  `json:"fontFamily"`
	FontWeight      int     `json:"fontWeight"`
	FontSizePx      float64 `json:"fontSizePx"`
	LineHeightEm    float64 `json:"lineHeightEm,omitempty"`
	LetterSpacingEm float64 `json:"letterSpacingEm,omitempty"`
	FixedSpacing    bool    `json:"fixedSpacing,omitempty"`
}

// CSS renders the style as an inline style attribute value.
func (s ElementStyle) CSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "font-family: '%s', sans-serif; font-weight: %d; font-size: %spx;",
		s.FontFamily, s.FontWeight, formatFloat(s.FontSizePx))
	if !s.FixedSpacing {
		fmt.Fprintf(&b, " line-height: %sem; letter-spacing: %sem;",
			formatFloat(s.LineHeightEm), formatFloat(s.LetterSpacingEm))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
