package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// IPSensor estimates the position from the public IP address using an
// ip-api.com compatible JSON endpoint.
type IPSensor struct {
	client *http.Client
	url    string

	mu   sync.Mutex
	last Position
}

func NewIPSensor(client *http.Client, url string) *IPSensor {
	return &IPSensor{client: client, url: url}
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition honours opts.Timeout and opts.MaximumAge. HighAccuracy has
// no effect on an IP lookup.
func (s *IPSensor) CurrentPosition(ctx context.Context, opts Options) (Position, error) {
	if opts.MaximumAge > 0 {
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		if !last.Taken.IsZero() && time.Since(last.Taken) <= opts.MaximumAge {
			return last, nil
		}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Position{}, &Error{Kind: Unknown, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, &Error{Kind: Timeout, Err: err}
		}
		return Position{}, &Error{Kind: Unavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return Position{}, &Error{Kind: PermissionDenied, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return Position{}, &Error{Kind: Unavailable, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var payload ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Position{}, &Error{Kind: Unknown, Err: err}
	}
	if payload.Status != "" && payload.Status != "success" {
		return Position{}, &Error{Kind: Unavailable, Err: errors.New(payload.Message)}
	}

	pos := Position{Latitude: payload.Lat, Longitude: payload.Lon, Taken: time.Now()}
	s.mu.Lock()
	s.last = pos
	s.mu.Unlock()
	return pos, nil
}
