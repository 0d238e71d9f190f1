// Package ui is the interaction state machine of the weather lookup page:
// debounced suggestion search, forecast orchestration and the geolocation
// flow. Host capabilities (widgets, timers, network, storage, sensor) are
// injected so the same core drives any surface.
package ui

import (
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/prefs"
	"github.com/i474232898/weather-lookup/internal/render"
)

// User-facing messages.
const (
	MsgInvalidCoordinates = "Please select a valid suggestion from the list or use the location button."
	MsgCityTooShort       = "Please enter a city name with at least 2 characters."
	MsgFetchFailed        = "Failed to fetch weather data. Please try again later."

	MsgInsecureContext   = "Using your location requires HTTPS. Please use the search box instead."
	MsgSensorUnsupported = "Geolocation is not supported by your browser. Please use the search box instead."
	MsgPermissionDenied  = "Location permission denied. You can use the search box instead."
	MsgUnavailable       = "Unable to determine your location. Please try the search box."
	MsgTimeout           = "Timed out while trying to get your location. Please try again."
	MsgLocationUnknown   = "Couldn't get your location. Please use the search box."

	// MyLocation labels a position that could not be named.
	MyLocation = "My location"
)

// View is the surface driven by the page. Calls are serialized by the page,
// never concurrent.
type View interface {
	SetError(msg string)
	ClearError()

	// ShowSuggestions replaces the suggestion entries and makes the list visible.
	ShowSuggestions(labels []string)
	// HideSuggestions empties and hides the suggestion list.
	HideSuggestions()

	SetCity(label string)
	SetSummary(text string)

	// SetLoading toggles the loading indicator and disables the fetch control
	// and the city input while on.
	SetLoading(on bool)
	// ShowForecast replaces the results container. An empty document clears it.
	ShowForecast(doc render.Document)

	// SetLocating disables the location control and shows its transient
	// "locating" state while on.
	SetLocating(on bool)
	SetToggles(p prefs.Preferences)
}

// Timer is a pending callback armed by a Clock.
type Timer interface {
	Stop() bool
}

// Clock arms timers. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the real-time Clock.
type SystemClock struct{}

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Page owns the mutable input fields shared by the search, forecast and
// geolocation flows. All reads and writes, and every View call, happen under mu.
type Page struct {
	mu   sync.Mutex
	view View

	city      string
	latitude  string
	longitude string
}

func NewPage(view View) *Page {
	return &Page{view: view}
}

// Input returns the current city label and raw coordinate fields.
func (p *Page) Input() (city, lat, lon string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.city, p.latitude, p.longitude
}

// SetInput replaces the city label and coordinates, e.g. from restored
// preferences.
func (p *Page) SetInput(city, lat, lon string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.city, p.latitude, p.longitude = city, lat, lon
	p.view.SetCity(city)
}
