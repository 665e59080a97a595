package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"travel_guide/internal/domain"
)

//go:embed seed/places.json
var seedJSON []byte

// Default returns the built-in India places catalog.
func Default() (*Catalog, error) {
	return Decode(bytes.NewReader(seedJSON))
}

// LoadFile reads a catalog file in either record layout.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode accepts {"places": [...]} or a bare array of records.
func Decode(r io.Reader) (*Catalog, error) {
	places, err := DecodePlaces(r)
	if err != nil {
		return nil, err
	}
	return New(places)
}

// DecodePlaces maps raw records without validating the catalog as a whole.
func DecodePlaces(r io.Reader) ([]domain.Place, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrInvalidCatalog, err)
	}
	var items []any
	switch t := doc.(type) {
	case []any:
		items = t
	case map[string]any:
		items, _ = t["places"].([]any)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no places", domain.ErrInvalidCatalog)
	}
	out := make([]domain.Place, 0, len(items))
	for i, it := range items {
		rec, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is not an object", domain.ErrInvalidCatalog, i)
		}
		p, err := mapPlace(rec, int64(i+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
		}
		out = append(out, p)
	}
	return out, nil
}
