package app

import (
	"strings"

	"travel_guide/internal/domain"
)

// intentKeywords is checked in order; the first set with a hit wins.
var intentKeywords = []struct {
	intent   domain.Intent
	keywords []string
}{
	{domain.IntentHours, []string{"timing", "hours", "open"}},
	{domain.IntentLocation, []string{"address", "location", "where"}},
	{domain.IntentAmenities, []string{"amenities", "facilities"}},
}

// Classify maps a query to the intent of its first keyword hit.
func Classify(query string) domain.Intent {
	q := strings.ToLower(query)
	for _, set := range intentKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(q, kw) {
				return set.intent
			}
		}
	}
	return domain.IntentGeneral
}
