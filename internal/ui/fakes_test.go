package ui

import (
	"context"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/prefs"
	"github.com/i474232898/weather-lookup/internal/render"
	"github.com/i474232898/weather-lookup/internal/sensor"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

type fakeView struct {
	mu sync.Mutex

	err         string
	labels      []string
	listVisible bool
	city        string
	summary     string
	loading     []bool
	docs        []render.Document
	locating    []bool
	toggles     prefs.Preferences
}

func (v *fakeView) SetError(msg string) { v.mu.Lock(); v.err = msg; v.mu.Unlock() }
func (v *fakeView) ClearError() { v.mu.Lock(); v.err = ""; v.mu.Unlock() }

func (v *fakeView) ShowSuggestions(labels []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.labels = labels
	v.listVisible = true
}

func (v *fakeView) HideSuggestions() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.labels = nil
	v.listVisible = false
}

func (v *fakeView) SetCity(label string) { v.mu.Lock(); v.city = label; v.mu.Unlock() }
func (v *fakeView) SetSummary(text string) { v.mu.Lock(); v.summary = text; v.mu.Unlock() }
func (v *fakeView) SetLoading(on bool) { v.mu.Lock(); v.loading = append(v.loading, on); v.mu.Unlock() }
func (v *fakeView) SetLocating(on bool) { v.mu.Lock(); v.locating = append(v.locating, on); v.mu.Unlock() }
func (v *fakeView) SetToggles(p prefs.Preferences) {
	v.mu.Lock()
	v.toggles = p
	v.mu.Unlock()
}

func (v *fakeView) ShowForecast(doc render.Document) {
	v.mu.Lock()
	v.docs = append(v.docs, doc)
	v.mu.Unlock()
}

func (v *fakeView) lastDoc() render.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.docs) == 0 {
		return render.Document{}
	}
	return v.docs[len(v.docs)-1]
}

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type fakeSuggestions struct {
	mu      sync.Mutex
	queries []string
	results []weather.PlaceCandidate
	err     error

	// when set, Suggest waits for a value before answering
	release chan struct{}
}

func (f *fakeSuggestions) Suggest(ctx context.Context, query string) ([]weather.PlaceCandidate, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}
	return f.results, f.err
}

func (f *fakeSuggestions) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type fakeForecasts struct {
	mu      sync.Mutex
	queries []weather.ForecastQuery
	text    string
	err     error

	// called while the request is in flight
	during func()
}

func (f *fakeForecasts) Forecast(ctx context.Context, q weather.ForecastQuery) (string, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	during := f.during
	f.during = nil
	f.mu.Unlock()

	if during != nil {
		during()
	}
	return f.text, f.err
}

func (f *fakeForecasts) calls() []weather.ForecastQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]weather.ForecastQuery(nil), f.queries...)
}

type fakeReverse struct {
	place weather.PlaceCandidate
	err   error
}

func (f fakeReverse) Reverse(ctx context.Context, lat, lon string) (weather.PlaceCandidate, error) {
	return f.place, f.err
}

type fakeSensor struct {
	pos   sensor.Position
	err   error
	calls int
	opts  sensor.Options
}

func (f *fakeSensor) CurrentPosition(ctx context.Context, opts sensor.Options) (sensor.Position, error) {
	f.calls++
	f.opts = opts
	return f.pos, f.err
}

// harness wires a page with fakes.
type harness struct {
	view        *fakeView
	page        *Page
	kv          *store.MemoryStore
	prefs       *prefs.Store
	clock       *manualClock
	suggestions *fakeSuggestions
	forecasts   *fakeForecasts
	orch        *Orchestrator
	search      *Search
}

func newHarness() *harness {
	h := &harness{
		view:        &fakeView{},
		kv:          store.NewMemoryStore(),
		clock:       &manualClock{},
		suggestions: &fakeSuggestions{},
		forecasts:   &fakeForecasts{text: "Monday\nSunrise 08:00\n 20 | ok | clear"},
	}
	h.page = NewPage(h.view)
	h.prefs = prefs.NewStore(h.kv)
	h.orch = NewOrchestrator(h.page, h.forecasts, h.prefs)
	h.search = NewSearch(h.page, h.suggestions, h.orch, h.clock, DefaultDebounce)
	return h
}
