package providers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// GoogleReverse resolves coordinates through the Google Geocoding API. It is
// used instead of the backend's /reverse-geocoding when an API key is set.
type GoogleReverse struct {
	apiKey string
}

func NewGoogleReverse(apiKey string) *GoogleReverse {
	return &GoogleReverse{apiKey: apiKey}
}

func (g *GoogleReverse) Reverse(ctx context.Context, lat, lon string) (weather.PlaceCandidate, error) {
	if g.apiKey == "" {
		return weather.PlaceCandidate{}, fmt.Errorf("geocoder api key is not configured")
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return weather.PlaceCandidate{}, fmt.Errorf("reverse: latitude: %w", err)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return weather.PlaceCandidate{}, fmt.Errorf("reverse: longitude: %w", err)
	}

	type result struct {
		addresses []geocoder.Address
		err       error
	}
	done := make(chan result, 1)
	go func() {
		// the geocoder package reads its key from a package variable and has no context support
		geocoder.ApiKey = g.apiKey
		addresses, err := geocoder.GeocodingReverse(geocoder.Location{Latitude: la, Longitude: lo})
		done <- result{addresses, err}
	}()

	var r result
	select {
	case <-ctx.Done():
		return weather.PlaceCandidate{}, ctx.Err()
	case r = <-done:
	}
	if r.err != nil {
		return weather.PlaceCandidate{}, fmt.Errorf("reverse: %w", r.err)
	}

	for _, addr := range r.addresses {
		if addr.City == "" {
			continue
		}
		return weather.PlaceCandidate{
			Name:      addr.City,
			Admin1:    addr.State,
			Country:   addr.Country,
			Latitude:  la,
			Longitude: lo,
		}, nil
	}
	return weather.PlaceCandidate{Latitude: la, Longitude: lo}, nil
}
