package prefs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Persisted keys.
const (
	KeyCityName  = "cityName"
	KeyLatitude  = "latitude"
	KeyLongitude = "longitude"
	KeyUnitTemp  = "unitTemp"
	KeyUnitWind  = "unitWind"
	KeyTime12h   = "time12h"
)

var validate = validator.New()

// Preferences are the user settings that survive across sessions.
type Preferences struct {
	CityName  string
	Latitude  string
	Longitude string
	UnitTemp  string `validate:"oneof=c f"`
	UnitWind  string `validate:"oneof=kmh mph"`
	Time12h   string `validate:"oneof=0 1"`
}

// Defaults returns the preferences used when nothing has been stored.
func Defaults() Preferences {
	return Preferences{
		UnitTemp: weather.UnitCelsius,
		UnitWind: weather.UnitKmh,
		Time12h:  "0",
	}
}

// Store reads and writes preferences through a KV backend. Every write uses
// the one-year expiry.
type Store struct {
	kv store.KV
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load reads every preference, falling back to defaults for absent or
// unrecognized unit and time values.
func (s *Store) Load(ctx context.Context) Preferences {
	p := Defaults()
	p.CityName = s.get(ctx, KeyCityName)
	p.Latitude = s.get(ctx, KeyLatitude)
	p.Longitude = s.get(ctx, KeyLongitude)

	if v := s.get(ctx, KeyUnitTemp); ValidateValue(v, "oneof=c f") == nil {
		p.UnitTemp = v
	}
	if v := s.get(ctx, KeyUnitWind); ValidateValue(v, "oneof=kmh mph") == nil {
		p.UnitWind = v
	}
	if v := s.get(ctx, KeyTime12h); ValidateValue(v, "oneof=0 1") == nil {
		p.Time12h = v
	}

	return p
}

func (s *Store) get(ctx context.Context, key string) string {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("ERROR: prefs: read %s: %v", key, err)
		}
		return ""
	}
	return v
}

// Set writes a single preference.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.kv.Set(ctx, key, value, store.OneYear); err != nil {
		return fmt.Errorf("prefs: write %s: %w", key, err)
	}
	return nil
}

// SaveLocation writes the accepted city label and coordinates. The writes are
// independent; a failure part way leaves the earlier ones in place.
func (s *Store) SaveLocation(ctx context.Context, city, lat, lon string) error {
	for _, kv := range [][2]string{{KeyCityName, city}, {KeyLatitude, lat}, {KeyLongitude, lon}} {
		if err := s.Set(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the unit and time fields.
func (p Preferences) Validate() error {
	return validate.Struct(p)
}

// ValidateValue checks a single value against a validator rule such as "oneof=c f".
func ValidateValue(value, rule string) error {
	return validate.Var(value, rule)
}
