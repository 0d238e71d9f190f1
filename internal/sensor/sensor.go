// Package sensor provides the device position capability used by the
// geolocation flow.
package sensor

import (
	"context"
	"fmt"
	"time"
)

// ErrorKind is the closed set of reasons a position request can fail.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	PermissionDenied
	Unavailable
	Timeout
)

func (k ErrorKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case Unavailable:
		return "position unavailable"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is returned by Sensor implementations when no position is produced.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sensor: %s: %v", e.Kind, e.Err)
	}
	return "sensor: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options mirror the knobs of a position request.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration

	// MaximumAge is the oldest cached fix that may be returned. Zero forces a
	// fresh reading.
	MaximumAge time.Duration
}

// Position is a single fix in decimal degrees.
type Position struct {
	Latitude  float64
	Longitude float64
	Taken     time.Time
}

// Sensor produces the device's current position.
type Sensor interface {
	CurrentPosition(ctx context.Context, opts Options) (Position, error)
}

// Static always reports the same position. It fits devices whose location is
// configured rather than sensed.
type Static struct {
	Latitude  float64
	Longitude float64
}

func (s Static) CurrentPosition(ctx context.Context, _ Options) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, &Error{Kind: Timeout, Err: err}
	}
	return Position{Latitude: s.Latitude, Longitude: s.Longitude, Taken: time.Now()}, nil
}
