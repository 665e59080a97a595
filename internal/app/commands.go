package app

import (
	"context"
	"fmt"

	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

// SeedService writes catalog records into the place store.
type SeedService struct {
	repo domain.PlaceRepository
}

func NewSeedService(r domain.PlaceRepository) *SeedService {
	return &SeedService{repo: r}
}

// Validate applies the serving catalog rules to a batch.
func (s *SeedService) Validate(places []domain.Place) error {
	_, err := catalog.New(places)
	return err
}

func (s *SeedService) SeedPlace(ctx context.Context, p domain.Place) error {
	if err := s.repo.UpsertPlace(ctx, p); err != nil {
		return fmt.Errorf("upsert place %d (%s): %w", p.ID, p.Name, err)
	}
	return nil
}

// LoadCatalog builds the serving catalog from the store, once, at start-up.
func LoadCatalog(ctx context.Context, r domain.PlaceRepository) (*catalog.Catalog, error) {
	places, err := r.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: store is empty", domain.ErrInvalidCatalog)
	}
	return catalog.New(places)
}
