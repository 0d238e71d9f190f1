package weather

import (
	"context"
)

// SuggestionService returns ranked place candidates for a free-text query.
// An empty slice means nothing matched.
type SuggestionService interface {
	Suggest(ctx context.Context, query string) ([]PlaceCandidate, error)
}

// ForecastService returns the plaintext multi-day forecast document.
type ForecastService interface {
	Forecast(ctx context.Context, q ForecastQuery) (string, error)
}

// ReverseGeocoder resolves coordinates to a single place. A zero-value Name
// means the service knew of no place there.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon string) (PlaceCandidate, error)
}
