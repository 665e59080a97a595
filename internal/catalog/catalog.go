// Package catalog holds the read-only set of places the service can answer about.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"travel_guide/internal/domain"
)

// Catalog is immutable once built. It is safe for concurrent use.
type Catalog struct {
	places []domain.Place
	byID   map[int64]int
}

// New validates places and returns a catalog preserving their order.
func New(places []domain.Place) (*Catalog, error) {
	c := &Catalog{
		places: make([]domain.Place, 0, len(places)),
		byID:   make(map[int64]int, len(places)),
	}
	names := make(map[string]struct{}, len(places))
	for i, p := range places {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("%w: place %d: %v", domain.ErrInvalidCatalog, i, err)
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := names[key]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", domain.ErrInvalidCatalog, p.Name)
		}
		names[key] = struct{}{}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", domain.ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = len(c.places)
		c.places = append(c.places, clonePlace(p))
	}
	return c, nil
}

// Places returns the records in catalog order.
func (c *Catalog) Places() []domain.Place {
	out := make([]domain.Place, len(c.places))
	for i, p := range c.places {
		out[i] = clonePlace(p)
	}
	return out
}

func (c *Catalog) Get(id int64) (domain.Place, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Place{}, false
	}
	return clonePlace(c.places[i]), true
}

func (c *Catalog) Len() int { return len(c.places) }

func validate(p domain.Place) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("empty name")
	}
	type span struct {
		days        uint8
		open, close int
	}
	spans := make([]span, 0, len(p.Hours))
	for _, h := range p.Hours {
		days, err := parseDays(h.Days)
		if err != nil {
			return fmt.Errorf("%s: %v", p.Name, err)
		}
		o, err := parseClock(h.Open)
		if err != nil {
			return fmt.Errorf("%s: %v", p.Name, err)
		}
		cl, err := parseClock(h.Close)
		if err != nil {
			return fmt.Errorf("%s: %v", p.Name, err)
		}
		if o >= cl {
			return fmt.Errorf("%s: open %s not before close %s", p.Name, h.Open, h.Close)
		}
		for _, s := range spans {
			if s.days&days != 0 && o < s.close && s.open < cl {
				return fmt.Errorf("%s: overlapping hours on %s", p.Name, h.Days)
			}
		}
		spans = append(spans, span{days: days, open: o, close: cl})
	}
	return nil
}

func clonePlace(p domain.Place) domain.Place {
	p.Categories = slices.Clone(p.Categories)
	p.Hours = slices.Clone(p.Hours)
	p.Amenities = slices.Clone(p.Amenities)
	if p.MapLink != nil {
		l := *p.MapLink
		p.MapLink = &l
	}
	return p
}
