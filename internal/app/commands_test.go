package app_test

import (
	"context"
	"errors"
	"testing"

	"travel_guide/internal/app"
	"travel_guide/internal/domain"
)

func TestSeedService_SeedAndLoad(t *testing.T) {
	repo := &fakeRepo{}
	svc := app.NewSeedService(repo)
	places := seedCatalog(t).Places()
	if err := svc.Validate(places); err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, p := range places {
		if err := svc.SeedPlace(context.Background(), p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	c, err := app.LoadCatalog(context.Background(), repo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != len(places) {
		t.Fatalf("expected %d places, got %d", len(places), c.Len())
	}
}

func TestSeedService_Errors(t *testing.T) {
	svc := app.NewSeedService(&fakeRepo{err: errBoom})
	if err := svc.SeedPlace(context.Background(), domain.Place{ID: 1, Name: "X"}); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
	if err := svc.Validate([]domain.Place{{ID: 1, Name: "A"}, {ID: 2, Name: "a"}}); !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
	if _, err := app.LoadCatalog(context.Background(), &fakeRepo{}); !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for empty store, got %v", err)
	}
}
