package app_test

import (
	"context"
	"strings"
	"testing"

	"travel_guide/internal/app"
	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

func TestRender_HoursTwoIntervalsInOrder(t *testing.T) {
	p := domain.Place{Name: "Jama Masjid", Hours: []domain.HourInterval{
		{Days: "Mon-Sun", Open: "07:00", Close: "12:00"},
		{Days: "Mon-Sun", Open: "13:30", Close: "18:30"},
	}}
	out := app.Render(p, domain.IntentHours)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 interval lines, got %q", out)
	}
	if lines[1] != "Mon-Sun: 07:00 - 12:00" || lines[2] != "Mon-Sun: 13:30 - 18:30" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestRender_HoursUnknown(t *testing.T) {
	out := app.Render(domain.Place{Name: "Golden Temple"}, domain.IntentHours)
	if !strings.Contains(out, catalog.HoursUnknown) {
		t.Fatalf("expected hours-unknown phrase, got %q", out)
	}
}

func TestRender_Location(t *testing.T) {
	p := domain.Place{Name: "Hawa Mahal", Address: domain.Address{Line: "Hawa Mahal Rd", City: "Jaipur"}}
	if out := app.Render(p, domain.IntentLocation); out != "**Hawa Mahal** is located at:\nHawa Mahal Rd, Jaipur" {
		t.Fatalf("got %q", out)
	}
	// no address falls back to general
	if out := app.Render(domain.Place{Name: "X", Info: "blurb"}, domain.IntentLocation); out != "**X**\n\nblurb" {
		t.Fatalf("got %q", out)
	}
}

func TestRender_Amenities(t *testing.T) {
	p := domain.Place{Name: "Red Fort", Amenities: []domain.Amenity{
		{Label: "Family Friendly", Available: true},
		{Label: "Pet Friendly", Available: false},
		{Label: "Parking", Available: true},
	}}
	if out := app.Render(p, domain.IntentAmenities); out != "**Red Fort** amenities:\nFamily Friendly, Parking" {
		t.Fatalf("got %q", out)
	}
	none := domain.Place{Name: "Baga Beach", Amenities: []domain.Amenity{{Label: "Pet Friendly"}}}
	if out := app.Render(none, domain.IntentAmenities); !strings.HasSuffix(out, "Basic amenities available") {
		t.Fatalf("got %q", out)
	}
}

func TestRender_General(t *testing.T) {
	p := domain.Place{Name: "Taj Mahal", Info: "A mausoleum.", Address: domain.Address{City: "Agra", Country: "India"}}
	if out := app.Render(p, domain.IntentGeneral); out != "**Taj Mahal**\n\nA mausoleum.\n\nAgra, India" {
		t.Fatalf("got %q", out)
	}
}

func TestTemplateSynthesizer_Deterministic(t *testing.T) {
	c := seedCatalog(t)
	s := app.NewTemplateSynthesizer()
	p, _ := c.Get(1)
	in := app.SynthesisInput{Query: "red fort", Place: p, Intent: domain.IntentGeneral, Catalog: c}
	a, err := s.Synthesize(context.Background(), in)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, _ := s.Synthesize(context.Background(), in)
	if a != b || s.Name() != "template" {
		t.Fatalf("not deterministic: %q vs %q", a, b)
	}
}
