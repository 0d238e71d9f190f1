package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/i474232898/weather-lookup/internal/prefs"
	"github.com/i474232898/weather-lookup/internal/render"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// ErrInvalidPreference is returned by the toggle setters for unknown tokens.
var ErrInvalidPreference = errors.New("invalid preference value")

// Orchestrator validates the input fields, requests the forecast and renders
// it. It is the only writer of preferences.
type Orchestrator struct {
	page      *Page
	forecasts weather.ForecastService
	prefs     *prefs.Store

	// guarded by page.mu
	busy  bool
	rerun bool
}

func NewOrchestrator(page *Page, forecasts weather.ForecastService, store *prefs.Store) *Orchestrator {
	return &Orchestrator{
		page:      page,
		forecasts: forecasts,
		prefs:     store,
	}
}

// Start loads the persisted preferences once and seeds the input fields and
// toggle controls.
func (o *Orchestrator) Start(ctx context.Context) prefs.Preferences {
	p := o.prefs.Load(ctx)
	o.page.SetInput(p.CityName, p.Latitude, p.Longitude)

	o.page.mu.Lock()
	o.page.view.SetToggles(p)
	o.page.mu.Unlock()
	return p
}

// FetchForecast validates the current input and, when valid, requests and
// displays the forecast. A call made while a request is in flight is
// ignored, matching the disabled fetch control.
func (o *Orchestrator) FetchForecast(ctx context.Context) {
	o.fetch(ctx, false)
}

func (o *Orchestrator) fetch(ctx context.Context, refresh bool) {
	p := o.page
	p.mu.Lock()
	if o.busy {
		if refresh {
			o.rerun = true
		} else {
			log.Printf("DEBUG: forecast request already in flight; ignoring")
		}
		p.mu.Unlock()
		return
	}

	p.view.HideSuggestions()
	p.view.ClearError()

	city, lat, lon := p.city, strings.TrimSpace(p.latitude), strings.TrimSpace(p.longitude)
	if _, err := weather.ParseCoordinates(lat, lon); err != nil {
		p.view.SetError(MsgInvalidCoordinates)
		p.mu.Unlock()
		return
	}
	if city != "" && utf8.RuneCountInString(city) < 2 {
		p.view.SetError(MsgCityTooShort)
		p.mu.Unlock()
		return
	}

	short, country := splitCityLabel(city)
	p.view.SetSummary(summaryLine(short, country, lat, lon))
	p.view.ShowForecast(render.Document{})

	o.busy = true
	p.view.SetLoading(true)
	p.mu.Unlock()

	ok := o.request(ctx, lat, lon)

	if ok {
		if err := o.prefs.SaveLocation(ctx, joinCityLabel(short, country), lat, lon); err != nil {
			log.Printf("ERROR: persisting location: %v", err)
		}
	}

	p.mu.Lock()
	again := o.rerun
	o.rerun = false
	p.mu.Unlock()
	if again {
		o.fetch(ctx, false)
	}
}

// request performs the forecast call. Loading state is always cleared on return.
func (o *Orchestrator) request(ctx context.Context, lat, lon string) (ok bool) {
	p := o.page
	defer func() {
		p.mu.Lock()
		o.busy = false
		p.view.SetLoading(false)
		p.mu.Unlock()
	}()

	pr := o.prefs.Load(ctx)
	text, err := o.forecasts.Forecast(ctx, weather.ForecastQuery{
		Latitude:  lat,
		Longitude: lon,
		UnitTemp:  pr.UnitTemp,
		UnitWind:  pr.UnitWind,
		Time12h:   pr.Time12h,
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		log.Printf("ERROR: fetching weather data for %s,%s: %v", lat, lon, err)
		p.view.SetError(MsgFetchFailed)
		return false
	}
	p.view.ShowForecast(render.Render(text))
	return true
}

// SetUnitTemp persists the temperature unit ("c" or "f") and refreshes the
// forecast when coordinates are already valid.
func (o *Orchestrator) SetUnitTemp(ctx context.Context, unit string) error {
	return o.toggle(ctx, prefs.KeyUnitTemp, unit, "oneof=c f")
}

// SetUnitWind persists the wind unit ("kmh" or "mph").
func (o *Orchestrator) SetUnitWind(ctx context.Context, unit string) error {
	return o.toggle(ctx, prefs.KeyUnitWind, unit, "oneof=kmh mph")
}

// SetTime12h persists the clock format.
func (o *Orchestrator) SetTime12h(ctx context.Context, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return o.toggle(ctx, prefs.KeyTime12h, v, "oneof=0 1")
}

func (o *Orchestrator) toggle(ctx context.Context, key, value, rule string) error {
	if err := prefs.ValidateValue(value, rule); err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidPreference, key, value)
	}
	if err := o.prefs.Set(ctx, key, value); err != nil {
		log.Printf("ERROR: persisting %s: %v", key, err)
	}

	current := o.prefs.Load(ctx)

	o.page.mu.Lock()
	o.page.view.SetToggles(current)
	_, err := weather.ParseCoordinates(o.page.latitude, o.page.longitude)
	o.page.mu.Unlock()

	if err == nil {
		o.fetch(ctx, true)
	}
	return nil
}

// splitCityLabel derives the short display name (text before the first comma)
// and the trailing country fragment (text after the last comma).
func splitCityLabel(city string) (short, country string) {
	if city == "" {
		return MyLocation, ""
	}
	short = strings.TrimSpace(strings.SplitN(city, ",", 2)[0])
	if i := strings.LastIndex(city, ","); i >= 0 {
		country = strings.TrimSpace(city[i+1:])
	}
	return short, country
}

func joinCityLabel(short, country string) string {
	if country == "" {
		return short
	}
	return short + ", " + country
}

func summaryLine(short, country, lat, lon string) string {
	return fmt.Sprintf("%s  |  %s,  %s", joinCityLabel(short, country), lat, lon)
}
