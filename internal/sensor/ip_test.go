package sensor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPSensorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":52.52,"lon":13.405}`))
	}))
	defer srv.Close()

	s := NewIPSensor(srv.Client(), srv.URL)
	pos, err := s.CurrentPosition(context.Background(), Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Latitude != 52.52 || pos.Longitude != 13.405 {
		t.Fatalf("unexpected position %+v", pos)
	}
}

func TestIPSensorErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    ErrorKind
	}{
		{
			name:    "forbidden",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) },
			want:    PermissionDenied,
		},
		{
			name:    "lookup failed",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"status":"fail","message":"private range"}`)) },
			want:    Unavailable,
		},
		{
			name: "slow",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(time.Second):
				}
			},
			timeout: 20 * time.Millisecond,
			want:    Timeout,
		},
		{
			name:    "garbage",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`not json`)) },
			want:    Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := NewIPSensor(srv.Client(), srv.URL)
			_, err := s.CurrentPosition(context.Background(), Options{Timeout: tt.timeout})

			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if serr.Kind != tt.want {
				t.Fatalf("expected kind %v, got %v", tt.want, serr.Kind)
			}
		})
	}
}

func TestIPSensorMaximumAge(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status":"success","lat":1,"lon":2}`))
	}))
	defer srv.Close()

	s := NewIPSensor(srv.Client(), srv.URL)
	ctx := context.Background()

	_, _ = s.CurrentPosition(ctx, Options{})
	_, _ = s.CurrentPosition(ctx, Options{MaximumAge: time.Hour})
	if calls != 1 {
		t.Fatalf("expected cached fix to be reused, got %d calls", calls)
	}

	_, _ = s.CurrentPosition(ctx, Options{MaximumAge: 0})
	if calls != 2 {
		t.Fatalf("expected zero maximum age to force a fresh lookup, got %d calls", calls)
	}
}
