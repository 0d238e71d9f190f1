package weather

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Unit tokens understood by the forecast service.
const (
	UnitCelsius    = "c"
	UnitFahrenheit = "f"
	UnitKmh        = "kmh"
	UnitMph        = "mph"
)

// ErrInvalidCoordinates is returned when latitude or longitude is missing or not a finite number.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// PlaceCandidate is one geocoded place returned by the suggestion and reverse lookups.
type PlaceCandidate struct {
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1,omitempty"`
	Admin2      string  `json:"admin2,omitempty"`
	Admin3      string  `json:"admin3,omitempty"`
	Admin4      string  `json:"admin4,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Label builds the display label: name, the non-empty region names and the
// country, falling back to the country code when the country is blank.
func (p PlaceCandidate) Label() string {
	parts := []string{p.Name}
	for _, region := range []string{p.Admin1, p.Admin2, p.Admin3, p.Admin4} {
		if strings.TrimSpace(region) != "" {
			parts = append(parts, region)
		}
	}

	country := p.Country
	if strings.TrimSpace(country) == "" {
		country = p.CountryCode
	}
	parts = append(parts, country)

	return strings.Join(parts, ", ")
}

// Coordinates is a position in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseCoordinates parses the raw latitude/longitude field values. Both must be
// present and parse as finite numbers.
func ParseCoordinates(lat, lon string) (Coordinates, error) {
	lat = strings.TrimSpace(lat)
	lon = strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return Coordinates{}, ErrInvalidCoordinates
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || math.IsNaN(la) || math.IsInf(la, 0) {
		return Coordinates{}, ErrInvalidCoordinates
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return Coordinates{}, ErrInvalidCoordinates
	}

	return Coordinates{Latitude: la, Longitude: lo}, nil
}

// FormatDegrees renders a coordinate component with 6 decimal places.
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// ForecastQuery parameterizes a forecast request.
type ForecastQuery struct {
	Latitude  string
	Longitude string
	UnitTemp  string // "c" or "f"
	UnitWind  string // "kmh" or "mph"
	Time12h   string // "0" or "1"
}
