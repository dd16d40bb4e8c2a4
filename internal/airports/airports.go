// Package airports resolves IATA codes to coordinates for route geometry.
package airports

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/routewise/flight-advisor/internal/planning"
)

// ErrUnknownAirport is returned when a code cannot be resolved.
var ErrUnknownAirport = errors.New("unknown airport code")

// entry is one row of the static directory.
type entry struct {
	Coordinates planning.Coordinates
	City        string
	Country     string
}

// Directory maps IATA codes to coordinates, falling back to a geocoding
// lookup for codes outside the static table when an API key is configured.
type Directory struct {
	mu     sync.RWMutex
	known  map[string]entry
	apiKey string
}

// staticEntries covers the network's served airports.
var staticEntries = map[string]entry{
	"PTY": {Coordinates: planning.Coordinates{Latitude: 9.0714, Longitude: -79.3835}, City: "Panama City", Country: "Panama"},
	"BOG": {Coordinates: planning.Coordinates{Latitude: 4.7016, Longitude: -74.1469}, City: "Bogota", Country: "Colombia"},
	"MIA": {Coordinates: planning.Coordinates{Latitude: 25.7959, Longitude: -80.2870}, City: "Miami", Country: "United States"},
	"JFK": {Coordinates: planning.Coordinates{Latitude: 40.6413, Longitude: -73.7781}, City: "New York", Country: "United States"},
	"LAX": {Coordinates: planning.Coordinates{Latitude: 33.9416, Longitude: -118.4085}, City: "Los Angeles", Country: "United States"},
	"GRU": {Coordinates: planning.Coordinates{Latitude: -23.4356, Longitude: -46.4731}, City: "Sao Paulo", Country: "Brazil"},
	"SCL": {Coordinates: planning.Coordinates{Latitude: -33.3930, Longitude: -70.7858}, City: "Santiago", Country: "Chile"},
	"MEX": {Coordinates: planning.Coordinates{Latitude: 19.4363, Longitude: -99.0721}, City: "Mexico City", Country: "Mexico"},
	"LIM": {Coordinates: planning.Coordinates{Latitude: -12.0219, Longitude: -77.1143}, City: "Lima", Country: "Peru"},
	"UIO": {Coordinates: planning.Coordinates{Latitude: -0.1292, Longitude: -78.3575}, City: "Quito", Country: "Ecuador"},
	"SJO": {Coordinates: planning.Coordinates{Latitude: 9.9981, Longitude: -84.2041}, City: "San Jose", Country: "Costa Rica"},
	"MDE": {Coordinates: planning.Coordinates{Latitude: 6.1645, Longitude: -75.4231}, City: "Medellin", Country: "Colombia"},
}

// NewDirectory creates a directory. geocoderAPIKey may be empty; lookups are
// then limited to the static table.
func NewDirectory(geocoderAPIKey string) *Directory {
	known := make(map[string]entry, len(staticEntries))
	for code, e := range staticEntries {
		known[code] = e
	}
	if geocoderAPIKey != "" {
		geocoder.ApiKey = geocoderAPIKey
	}
	return &Directory{known: known, apiKey: geocoderAPIKey}
}

// Coordinates resolves an IATA code. Geocoded results are cached for the
// lifetime of the directory.
func (d *Directory) Coordinates(iata string) (planning.Coordinates, error) {
	code := strings.ToUpper(strings.TrimSpace(iata))
	if len(code) != 3 {
		return planning.Coordinates{}, fmt.Errorf("%w: %q", ErrUnknownAirport, iata)
	}

	d.mu.RLock()
	e, ok := d.known[code]
	d.mu.RUnlock()
	if ok {
		return e.Coordinates, nil
	}

	if d.apiKey == "" {
		return planning.Coordinates{}, fmt.Errorf("%w: %s", ErrUnknownAirport, code)
	}

	// Best-effort geocode of the airport by name.
	location, err := geocoder.Geocoding(geocoder.Address{
		Street: code + " airport",
	})
	if err != nil {
		log.Printf("airports: geocoding %s failed: %v", code, err)
		return planning.Coordinates{}, fmt.Errorf("%w: %s", ErrUnknownAirport, code)
	}

	coords := planning.Coordinates{Latitude: location.Latitude, Longitude: location.Longitude}

	d.mu.Lock()
	d.known[code] = entry{Coordinates: coords}
	d.mu.Unlock()

	return coords, nil
}

// Register adds or overrides a directory row, typically from configuration.
func (d *Directory) Register(iata string, coords planning.Coordinates) {
	code := strings.ToUpper(strings.TrimSpace(iata))
	if code == "" {
		return
	}
	d.mu.Lock()
	d.known[code] = entry{Coordinates: coords}
	d.mu.Unlock()
}
