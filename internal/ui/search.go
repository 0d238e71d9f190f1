package ui

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultDebounce is the quiet period before a suggestion lookup is issued.
const DefaultDebounce = 300 * time.Millisecond

// minQueryLen is the shortest query that is sent to the suggestion service.
const minQueryLen = 2

// ErrNoSuggestion is returned by Select for an index outside the shown list.
var ErrNoSuggestion = errors.New("no such suggestion")

// Search runs the debounced suggestion lookup for one input field.
//
// At most one timer is pending. Each lookup carries a call token; any newer
// Query, Clear, Blur or Select bumps the token so a response that arrives
// afterwards is discarded instead of repopulating the list.
type Search struct {
	page        *Page
	suggestions weather.SuggestionService
	orch        *Orchestrator
	clock       Clock
	debounce    time.Duration

	// guarded by page.mu
	timer      Timer
	token      uint64
	candidates []weather.PlaceCandidate
}

func NewSearch(page *Page, suggestions weather.SuggestionService, orch *Orchestrator, clock Clock, debounce time.Duration) *Search {
	if clock == nil {
		clock = SystemClock{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Search{
		page:        page,
		suggestions: suggestions,
		orch:        orch,
		clock:       clock,
		debounce:    debounce,
	}
}

// Query records the typed text and (re)arms the debounce timer.
func (s *Search) Query(ctx context.Context, query string) {
	s.page.mu.Lock()
	defer s.page.mu.Unlock()

	s.page.city = query
	tok := s.cancelLocked()
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		s.lookup(ctx, tok, query)
	})
}

// Clear is the backspace fast path: it empties the city and coordinates and
// hides the list right away, without waiting for the debounce window.
func (s *Search) Clear() {
	s.page.mu.Lock()
	defer s.page.mu.Unlock()

	s.cancelLocked()
	s.candidates = nil
	s.page.city, s.page.latitude, s.page.longitude = "", "", ""
	s.page.view.SetCity("")
	s.page.view.HideSuggestions()
}

// Blur hides the list when the input loses relevance (a click elsewhere).
func (s *Search) Blur() {
	s.page.mu.Lock()
	defer s.page.mu.Unlock()

	s.cancelLocked()
	s.candidates = nil
	s.page.view.HideSuggestions()
}

// Candidates returns the entries currently shown.
func (s *Search) Candidates() []weather.PlaceCandidate {
	s.page.mu.Lock()
	defer s.page.mu.Unlock()
	return append([]weather.PlaceCandidate(nil), s.candidates...)
}

// Select adopts the i-th shown candidate as the active location and fetches
// its forecast immediately.
func (s *Search) Select(ctx context.Context, i int) error {
	s.page.mu.Lock()
	if i < 0 || i >= len(s.candidates) {
		s.page.mu.Unlock()
		return ErrNoSuggestion
	}
	c := s.candidates[i]
	label := c.Label()

	s.cancelLocked()
	s.candidates = nil
	s.page.city = label
	s.page.latitude = strconv.FormatFloat(c.Latitude, 'f', -1, 64)
	s.page.longitude = strconv.FormatFloat(c.Longitude, 'f', -1, 64)
	s.page.view.SetCity(label)
	s.page.view.HideSuggestions()
	s.page.mu.Unlock()

	s.orch.FetchForecast(ctx)
	return nil
}

// cancelLocked stops the pending timer and invalidates any in-flight lookup.
// It returns the token for the next lookup.
func (s *Search) cancelLocked() uint64 {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.token++
	return s.token
}

func (s *Search) lookup(ctx context.Context, tok uint64, query string) {
	s.page.mu.Lock()
	if tok != s.token {
		s.page.mu.Unlock()
		return
	}
	s.timer = nil
	if utf8.RuneCountInString(query) < minQueryLen {
		s.candidates = nil
		s.page.view.HideSuggestions()
		s.page.mu.Unlock()
		return
	}
	s.page.mu.Unlock()

	results, err := s.suggestions.Suggest(ctx, query)

	s.page.mu.Lock()
	defer s.page.mu.Unlock()

	if tok != s.token {
		log.Printf("DEBUG: discarding superseded suggestions for %q", query)
		return
	}
	if err != nil {
		log.Printf("ERROR: fetching suggestions for %q: %v", query, err)
		s.candidates = nil
		s.page.view.HideSuggestions()
		return
	}
	if len(results) == 0 {
		s.candidates = nil
		s.page.view.HideSuggestions()
		return
	}

	s.candidates = results
	labels := make([]string, 0, len(results))
	for _, c := range results {
		labels = append(labels, c.Label())
	}
	s.page.view.ShowSuggestions(labels)
}
