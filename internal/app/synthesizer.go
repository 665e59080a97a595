package app

import (
	"context"
	"strings"

	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

// Synthesizer turns a matched place into answer text.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, in SynthesisInput) (string, error)
}

// SynthesisInput carries the matched place and the catalog it came from.
type SynthesisInput struct {
	Query   string
	Place   domain.Place
	Intent  domain.Intent
	Catalog *catalog.Catalog
}

const basicAmenities = "Basic amenities available"

// TemplateSynthesizer renders fixed templates from catalog fields only.
type TemplateSynthesizer struct{}

func NewTemplateSynthesizer() *TemplateSynthesizer { return &TemplateSynthesizer{} }

func (TemplateSynthesizer) Name() string { return "template" }

func (TemplateSynthesizer) Synthesize(_ context.Context, in SynthesisInput) (string, error) {
	return Render(in.Place, in.Intent), nil
}

// Render is deterministic in (place, intent).
func Render(p domain.Place, intent domain.Intent) string {
	switch intent {
	case domain.IntentHours:
		return "**" + p.Name + "** is open:\n" + catalog.FormatHours(p.Hours, "\n")
	case domain.IntentLocation:
		if addr := p.Address.String(); addr != "" {
			return "**" + p.Name + "** is located at:\n" + addr
		}
	case domain.IntentAmenities:
		list := basicAmenities
		if a := p.AvailableAmenities(); len(a) > 0 {
			list = strings.Join(a, ", ")
		}
		return "**" + p.Name + "** amenities:\n" + list
	}
	return renderGeneral(p)
}

func renderGeneral(p domain.Place) string {
	parts := []string{"**" + p.Name + "**"}
	if p.Info != "" {
		parts = append(parts, p.Info)
	}
	if addr := p.Address.String(); addr != "" {
		parts = append(parts, addr)
	}
	return strings.Join(parts, "\n\n")
}
