package domain

import "context"

type PlaceRepository interface {
	UpsertPlace(ctx context.Context, p Place) error
	ListPlaces(ctx context.Context) ([]Place, error)
}

// ChatMessage is one turn sent to a text-generation backend.
type ChatMessage struct {
	Role    string // system|user
	Content string
}

// ModelClient is an external text-generation service. Complete returns
// the model's free-text reply only.
type ModelClient interface {
	Complete(ctx context.Context, msgs []ChatMessage) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
