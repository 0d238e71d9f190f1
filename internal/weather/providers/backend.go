package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Backend talks to the weather page backend: /suggestions, /weather and
// /reverse-geocoding. It implements weather.SuggestionService,
// weather.ForecastService and weather.ReverseGeocoder.
type Backend struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	suggest *rate.Limiter
}

// BackendOption customizes a Backend.
type BackendOption func(*Backend)

// WithSuggestLimit caps outbound suggestion lookups at rps requests per second.
func WithSuggestLimit(rps float64, burst int) BackendOption {
	return func(b *Backend) {
		if rps > 0 {
			b.suggest = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithBackoff overrides the retry policy.
func WithBackoff(cfg BackoffConfig) BackendOption {
	return func(b *Backend) {
		b.httpCfg.Backoff = cfg
	}
}

func NewBackend(client *http.Client, baseURL string, opts ...BackendOption) *Backend {
	b := &Backend{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 250 * time.Millisecond,
				MaxInterval:     2 * time.Second,
			},
		},
		circuit: newBreaker("weather-backend"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) get(ctx context.Context, path string, values url.Values) (*http.Response, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", b.baseURL, path, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}
	return doRequest(ctx, b.httpCfg, b.circuit, buildRequest)
}

// Suggest requests place candidates for query.
func (b *Backend) Suggest(ctx context.Context, query string) ([]weather.PlaceCandidate, error) {
	if b.suggest != nil {
		if err := b.suggest.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	values := url.Values{}
	values.Set("q", query)

	resp, err := b.get(ctx, "/suggestions", values)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	defer resp.Body.Close()

	var candidates []weather.PlaceCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("suggestions: decode: %w", err)
	}
	return candidates, nil
}

// Forecast requests the plaintext forecast document.
func (b *Backend) Forecast(ctx context.Context, q weather.ForecastQuery) (string, error) {
	values := url.Values{}
	values.Set("lat", q.Latitude)
	values.Set("lon", q.Longitude)
	values.Set("unit_temp", q.UnitTemp)
	values.Set("unit_wind", q.UnitWind)
	values.Set("time_12h", q.Time12h)

	resp, err := b.get(ctx, "/weather", values)
	if err != nil {
		return "", fmt.Errorf("weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("weather: read body: %w", err)
	}
	return string(body), nil
}

// Reverse resolves lat/lon to a place. The backend answers {} when nothing is
// known, which decodes to a candidate with an empty Name.
func (b *Backend) Reverse(ctx context.Context, lat, lon string) (weather.PlaceCandidate, error) {
	values := url.Values{}
	values.Set("lat", lat)
	values.Set("lon", lon)

	resp, err := b.get(ctx, "/reverse-geocoding", values)
	if err != nil {
		return weather.PlaceCandidate{}, fmt.Errorf("reverse-geocoding: %w", err)
	}
	defer resp.Body.Close()

	var place weather.PlaceCandidate
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return weather.PlaceCandidate{}, fmt.Errorf("reverse-geocoding: decode: %w", err)
	}
	return place, nil
}
