package app

import (
	"strings"

	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

// Retrieve returns the first place in catalog order the query is about, or nil.
// Matching is case-insensitive substring containment: name and category tags
// in both directions, info and address only when they contain the query.
// Ties go to catalog order; there is no ranking.
func Retrieve(query string, c *catalog.Catalog) *domain.Place {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	for _, p := range c.Places() {
		if matches(q, p) {
			return &p
		}
	}
	return nil
}

func matches(q string, p domain.Place) bool {
	name := strings.ToLower(p.Name)
	if strings.Contains(name, q) || strings.Contains(q, name) {
		return true
	}
	for _, tag := range p.Categories {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if strings.Contains(t, q) || strings.Contains(q, t) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(p.Info), q) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Address.String()), q)
}

// MentionedIn returns the first place whose name appears in text, or nil.
func MentionedIn(text string, c *catalog.Catalog) *domain.Place {
	t := strings.ToLower(text)
	if strings.TrimSpace(t) == "" {
		return nil
	}
	for _, p := range c.Places() {
		if strings.Contains(t, strings.ToLower(p.Name)) {
			return &p
		}
	}
	return nil
}
