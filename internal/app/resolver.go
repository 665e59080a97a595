package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

// ResolverService answers one query per call. It holds no per-request state.
type ResolverService struct {
	catalog *catalog.Catalog
	synth   Synthesizer
}

func NewResolverService(c *catalog.Catalog, s Synthesizer) *ResolverService {
	if s == nil {
		s = NewTemplateSynthesizer()
	}
	return &ResolverService{catalog: c, synth: s}
}

func (s *ResolverService) Catalog() *catalog.Catalog { return s.catalog }

func (s *ResolverService) Strategy() string { return s.synth.Name() }

// Resolve ends in exactly one of matched, unmatched or failed. The only
// error returned is domain.ErrInvalidInput for an empty query; synthesis
// failures become the fixed apology.
func (s *ResolverService) Resolve(ctx context.Context, query string) (domain.Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Resolution{}, domain.ErrInvalidInput
	}

	place := Retrieve(query, s.catalog)
	if place == nil {
		return domain.Resolution{Answer: domain.RefusalText, Outcome: domain.OutcomeUnmatched}, nil
	}

	intent := Classify(query)
	text, err := s.synth.Synthesize(ctx, SynthesisInput{
		Query:   query,
		Place:   *place,
		Intent:  intent,
		Catalog: s.catalog,
	})
	if err != nil {
		log.Error().Err(err).
			Str("strategy", s.synth.Name()).
			Str("place", place.Name).
			Msg("answer synthesis failed")
		return domain.Resolution{Answer: domain.ApologyText, Intent: intent, Outcome: domain.OutcomeFailed}, nil
	}

	return domain.Resolution{Answer: text, Place: place, Intent: intent, Outcome: domain.OutcomeMatched}, nil
}
