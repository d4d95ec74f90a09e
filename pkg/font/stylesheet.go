package font

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Link is a stylesheet reference for one family at a set of weights.
type Link struct {
	ID   string `json:"id"`
	Href string `json:"href"`
}

// normalizeWeights returns a sorted copy without duplicates or non-positive values.
func normalizeWeights(weights []int) []int {
	out := make([]int, 0, len(weights))
	for _, w := range weights {
		if w > 0 && !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return out
}

func joinWeights(weights []int, sep string) string {
	parts := make([]string, len(weights))
	for i, w := range weights {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, sep)
}

// StylesheetURL builds the CSS2 API URL for a family, e.g.
// https://fonts.googleapis.com/css2?family=Open+Sans:wght@400;700&display=swap
func StylesheetURL(family string, weights []int) string {
	familyName := strings.Join(strings.Fields(family), "+")
	weights = normalizeWeights(weights)
	if len(weights) == 0 {
		return fmt.Sprintf("%s?family=%s&display=swap", GoogleFontsAPI, familyName)
	}
	return fmt.Sprintf("%s?family=%s:wght@%s&display=swap", GoogleFontsAPI, familyName, joinWeights(weights, ";"))
}

// StylesheetID is the deterministic element id of a family/weights link.
// Two requests for the same family and weight set always share an id.
func StylesheetID(family string, weights []int) string {
	id := "gfont-" + strings.Join(strings.Fields(family), "-")
	if weights = normalizeWeights(weights); len(weights) > 0 {
		id += "-" + joinWeights(weights, "-")
	}
	return id
}

// SpecimenURL links to the public specimen page of a family.
func SpecimenURL(family string) string {
	return SpecimenBaseURL + strings.Join(strings.Fields(family), "+")
}

// LinkSet tracks which stylesheet links a page already carries.
type LinkSet struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	links []Link
}

// NewLinkSet creates an empty link set.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add registers the link for family/weights. It reports false, and changes
// nothing, when the same link was added before.
func (s *LinkSet) Add(family string, weights []int) (Link, bool) {
	link := Link{
		ID:   StylesheetID(family, weights),
		Href: StylesheetURL(family, weights),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[link.ID]; ok {
		stylesheetLinks.Inc("duplicate")
		return link, false
	}
	s.seen[link.ID] = struct{}{}
	s.links = append(s.links, link)
	stylesheetLinks.Inc("added")
	return link, true
}

// Has reports whether a link id is present.
func (s *LinkSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok
}

// Links returns the links in insertion order.
func (s *LinkSet) Links() []Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.links)
}

// Len is the number of distinct links.
func (s *LinkSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}
