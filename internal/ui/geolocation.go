package ui

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/sensor"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// SensorTimeout bounds a single position request.
const SensorTimeout = 10 * time.Second

// Geolocator resolves the device position into the page's coordinates and
// city label, then fetches the forecast.
type Geolocator struct {
	page    *Page
	sensor  sensor.Sensor
	reverse weather.ReverseGeocoder
	orch    *Orchestrator
	origin  *url.URL

	// guarded by page.mu
	locating bool
}

// NewGeolocator wires the flow. origin is the address the page is served
// from; a nil sensor means the capability is unavailable.
func NewGeolocator(page *Page, s sensor.Sensor, reverse weather.ReverseGeocoder, orch *Orchestrator, origin *url.URL) *Geolocator {
	return &Geolocator{
		page:    page,
		sensor:  s,
		reverse: reverse,
		orch:    orch,
		origin:  origin,
	}
}

// SecureContext reports whether origin is served over https or from the
// loopback host.
func SecureContext(origin *url.URL) bool {
	if origin == nil {
		return false
	}
	if strings.EqualFold(origin.Scheme, "https") {
		return true
	}
	return common.IsLoopbackHost(origin.Hostname())
}

// UseCurrentLocation senses the position, names it and fetches its forecast.
func (g *Geolocator) UseCurrentLocation(ctx context.Context) {
	p := g.page
	p.mu.Lock()
	p.view.HideSuggestions()
	p.view.ClearError()

	if !SecureContext(g.origin) {
		p.view.SetError(MsgInsecureContext)
		p.mu.Unlock()
		return
	}
	if g.sensor == nil {
		p.view.SetError(MsgSensorUnsupported)
		p.mu.Unlock()
		return
	}
	if g.locating {
		p.mu.Unlock()
		return
	}
	g.locating = true
	p.view.SetLocating(true)
	p.mu.Unlock()

	defer g.release()

	pos, err := g.sensor.CurrentPosition(ctx, sensor.Options{
		HighAccuracy: true,
		Timeout:      SensorTimeout,
		MaximumAge:   0,
	})
	if err != nil {
		log.Printf("ERROR: locating device: %v", err)
		g.release()
		p.mu.Lock()
		p.view.SetError(sensorMessage(err))
		p.mu.Unlock()
		return
	}

	lat := weather.FormatDegrees(pos.Latitude)
	lon := weather.FormatDegrees(pos.Longitude)

	p.mu.Lock()
	p.latitude, p.longitude = lat, lon
	p.mu.Unlock()

	label := g.placeLabel(ctx, lat, lon)

	p.mu.Lock()
	p.city = label
	p.view.SetCity(label)
	p.mu.Unlock()

	g.release()
	g.orch.FetchForecast(ctx)
}

// placeLabel names the position. Every failure degrades to MyLocation.
func (g *Geolocator) placeLabel(ctx context.Context, lat, lon string) string {
	if g.reverse == nil {
		return MyLocation
	}
	place, err := g.reverse.Reverse(ctx, lat, lon)
	if err != nil {
		log.Printf("INFO: reverse lookup for %s,%s failed: %v", lat, lon, err)
		return MyLocation
	}
	if place.Name == "" {
		return MyLocation
	}
	return place.Label()
}

// release restores the location control. Safe to call more than once.
func (g *Geolocator) release() {
	g.page.mu.Lock()
	defer g.page.mu.Unlock()
	if !g.locating {
		return
	}
	g.locating = false
	g.page.view.SetLocating(false)
}

// sensorMessage maps a sensor failure to its user-facing message.
func sensorMessage(err error) string {
	kind := sensor.Unknown
	var serr *sensor.Error
	switch {
	case errors.As(err, &serr):
		kind = serr.Kind
	case errors.Is(err, context.DeadlineExceeded):
		kind = sensor.Timeout
	}

	switch kind {
	case sensor.PermissionDenied:
		return MsgPermissionDenied
	case sensor.Unavailable:
		return MsgUnavailable
	case sensor.Timeout:
		return MsgTimeout
	case sensor.Unknown:
		return MsgLocationUnknown
	}
	return MsgLocationUnknown
}
