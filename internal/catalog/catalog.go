// Package catalog holds the wallpapers found by one crawl, in discovery
// order, and answers the filter queries the pipeline runs against them.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"go-gw2walls/internal/models"
)

// ErrEmptyCatalog means the crawl produced no records at all. The pipeline
// checks for this right after extraction, before any filter is applied.
var ErrEmptyCatalog = errors.New("no wallpapers were found on the site")

// ValidationError reports a filter value that does not occur anywhere in the
// catalog. Carrying the valid choices turns a typo into an actionable
// message instead of a silently empty result.
type ValidationError struct {
	Field   string
	Value   string
	Choices []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("no wallpaper matches %s %q (valid choices: %s)",
		e.Field, e.Value, strings.Join(e.Choices, ", "))
}

// Catalog is an immutable snapshot of one crawl.
type Catalog struct {
	records []models.WallpaperRecord
}

// New builds a catalog over the given records. The slice is kept as-is;
// callers hand over ownership.
func New(records []models.WallpaperRecord) *Catalog {
	return &Catalog{records: records}
}

func (c *Catalog) Len() int { return len(c.records) }

// Records returns the full catalog in discovery order.
func (c *Catalog) Records() []models.WallpaperRecord { return c.records }

// Resolutions lists the distinct resolution tokens present, in first-seen order.
func (c *Catalog) Resolutions() []string {
	return c.distinct(func(r models.WallpaperRecord) string { return r.Resolution })
}

// Names lists the distinct wallpaper names present, in first-seen order.
func (c *Catalog) Names() []string {
	return c.distinct(func(r models.WallpaperRecord) string { return r.Name })
}

// Categories lists the distinct categories present, in first-seen order.
func (c *Catalog) Categories() []string {
	return c.distinct(func(r models.WallpaperRecord) string { return string(r.Category) })
}

// Filter selects the records matching an exact resolution, plus optional
// exact name and category matches (empty values mean "any"). Order is
// preserved. A requested value that occurs nowhere in the catalog fails with
// a *ValidationError listing the valid choices for that field.
func (c *Catalog) Filter(resolution, name string, category models.Category) ([]models.WallpaperRecord, error) {
	if err := c.validate("resolution", resolution, c.Resolutions()); err != nil {
		return nil, err
	}
	if name != "" {
		if err := c.validate("name", name, c.Names()); err != nil {
			return nil, err
		}
	}
	if category != "" {
		if err := c.validate("category", string(category), c.Categories()); err != nil {
			return nil, err
		}
	}

	var matched []models.WallpaperRecord
	for _, r := range c.records {
		if r.Resolution != resolution {
			continue
		}
		if name != "" && r.Name != name {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		matched = append(matched, r)
	}
	return matched, nil
}

func (c *Catalog) validate(field, value string, choices []string) error {
	for _, choice := range choices {
		if choice == value {
			return nil
		}
	}
	return &ValidationError{Field: field, Value: value, Choices: choices}
}

func (c *Catalog) distinct(key func(models.WallpaperRecord) string) []string {
	seen := make(map[string]bool, len(c.records))
	var out []string
	for _, r := range c.records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
