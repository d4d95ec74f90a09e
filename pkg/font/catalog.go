package font

import (
	"slices"
	"strconv"
	"strings"
)

// Category is a font classification bucket.
type Category string

const (
	SansSerif Category = "sans-serif"
	Serif     Category = "serif"
	Display   Category = "display"
	Monospace Category = "monospace"
)

// Categories lists the buckets in picker order.
var Categories = []Category{SansSerif, Serif, Display, Monospace}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Categories, c) {
		return c, true
	}
	return "", false
}

// Record is one family from the font directory. Records are never mutated
// after the catalog is built.
type Record struct {
	Family   string   `json:"family"`
	Category Category `json:"category"`
	Variants []string `json:"variants"`
}

// ParseWeights turns variant tokens such as "regular", "300" or "700italic"
// into a sorted, duplicate-free list of numeric weights.
func ParseWeights(variants []string) []int {
	weights := make([]int, 0, len(variants))
	for _, v := range variants {
		base := strings.Replace(strings.TrimSpace(v), "italic", "", 1)
		if base == "" || base == "regular" {
			base = strconv.Itoa(DefaultFontWeight)
		}
		w, err := strconv.Atoi(base)
		if err != nil {
			continue
		}
		if !slices.Contains(weights, w) {
			weights = append(weights, w)
		}
	}
	slices.Sort(weights)
	return weights
}

// Catalog is the partitioned font directory. It is built once and only read
// afterwards, so it needs no locking.
type Catalog struct {
	buckets map[Category][]Record
	weights map[string][]int
	total   int
}

// NewCatalog partitions records into capped category buckets. Weight lists
// cover every record, including those beyond the caps, so a stored selection
// outside the visible buckets still resolves its weights.
func NewCatalog(records []Record, caps map[Category]int) *Catalog {
	if caps == nil {
		caps = DefaultCaps
	}

	c := &Catalog{
		buckets: make(map[Category][]Record, len(Categories)),
		weights: make(map[string][]int, len(records)),
		total:   len(records),
	}
	for _, r := range records {
		c.weights[r.Family] = ParseWeights(r.Variants)

		limit, ok := caps[r.Category]
		if !ok {
			continue
		}
		if len(c.buckets[r.Category]) < limit {
			c.buckets[r.Category] = append(c.buckets[r.Category], r)
		}
	}
	return c
}

// EmptyCatalog is what the picker shows when the directory is unavailable.
func EmptyCatalog() *Catalog {
	return NewCatalog(nil, nil)
}

// Fonts returns the capped bucket for a category. Callers must not modify it.
func (c *Catalog) Fonts(cat Category) []Record {
	return c.buckets[cat]
}

// Weights returns the supported weights of a family, or nil when unknown.
func (c *Catalog) Weights(family string) []int {
	return c.weights[family]
}

// CategoryOf reports which bucket shows the family. Families outside every
// bucket open the picker on sans-serif.
func (c *Catalog) CategoryOf(family string) Category {
	for _, cat := range Categories {
		for _, r := range c.buckets[cat] {
			if r.Family == family {
				return cat
			}
		}
	}
	return SansSerif
}

// Len is the number of families in the unfiltered directory.
func (c *Catalog) Len() int {
	return c.total
}

// Counts returns the bucket sizes by category.
func (c *Catalog) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = len(c.buckets[cat])
	}
	return counts
}
