package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/prefs"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/sensor"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/ui"
	"github.com/i474232898/weather-lookup/internal/ui/terminal"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

const usage = `Type a city name to search, then:
  :N          pick suggestion N
  :go         fetch the forecast for the current input
  :loc        use the current location
  :c :f       temperature unit
  :kmh :mph   wind unit
  :12h :24h   time format
  (empty)     clear the input
  :q          quit`

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound backend calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Preference storage, swept for expired entries.
	var kv store.KV
	if cfg.PrefsDBPath == "memory" {
		kv = store.NewMemoryStore()
	} else {
		db, err := store.NewSQLite(cfg.PrefsDBPath)
		if err != nil {
			log.Fatalf("failed to open preference store: %v", err)
		}
		defer db.Close()
		kv = db
	}

	sched := scheduler.New(kv, cfg.PrefsSweepInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	backend := providers.NewBackend(httpClient, cfg.BaseURL,
		providers.WithSuggestLimit(cfg.SuggestRPS, cfg.SuggestBurst))

	var reverse weather.ReverseGeocoder = backend
	if cfg.GeocoderAPIKey != "" {
		reverse = providers.NewGoogleReverse(cfg.GeocoderAPIKey)
	}

	var position sensor.Sensor
	switch {
	case cfg.StaticLat != "":
		lat, _ := strconv.ParseFloat(cfg.StaticLat, 64)
		lon, _ := strconv.ParseFloat(cfg.StaticLon, 64)
		position = sensor.Static{Latitude: lat, Longitude: lon}
	case cfg.IPGeoURL != "":
		position = sensor.NewIPSensor(httpClient, cfg.IPGeoURL)
	}

	view := terminal.NewView(os.Stdout)
	page := ui.NewPage(view)
	orch := ui.NewOrchestrator(page, backend, prefs.NewStore(kv))
	search := ui.NewSearch(page, backend, orch, ui.SystemClock{}, cfg.SuggestDebounce)
	geo := ui.NewGeolocator(page, position, reverse, orch, cfg.PageURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch.Start(ctx)
	fmt.Println(usage)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for ctx.Err() == nil {
		input, err := line.Prompt("city> ")
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				log.Printf("ERROR: reading input: %v", err)
			}
			return
		}
		line.AppendHistory(input)

		if !dispatch(ctx, strings.TrimSpace(input), search, orch, geo) {
			return
		}
	}
}

// dispatch runs one command line. It returns false when the session should end.
func dispatch(ctx context.Context, input string, search *ui.Search, orch *ui.Orchestrator, geo *ui.Geolocator) bool {
	var err error
	switch input {
	case "":
		search.Clear()
	case ":q":
		return false
	case ":go":
		search.Blur()
		orch.FetchForecast(ctx)
	case ":loc":
		geo.UseCurrentLocation(ctx)
	case ":c", ":f":
		err = orch.SetUnitTemp(ctx, input[1:])
	case ":kmh", ":mph":
		err = orch.SetUnitWind(ctx, input[1:])
	case ":12h", ":24h":
		err = orch.SetTime12h(ctx, input == ":12h")
	default:
		if n, convErr := strconv.Atoi(strings.TrimPrefix(input, ":")); strings.HasPrefix(input, ":") && convErr == nil {
			err = search.Select(ctx, n)
			break
		}
		if strings.HasPrefix(input, ":") {
			fmt.Println(usage)
			break
		}
		search.Query(ctx, input)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return true
}
