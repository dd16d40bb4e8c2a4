package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/routewise/flight-advisor/internal/planning"
)

var (
	// ErrNotFound is returned when no row exists for a point lookup.
	ErrNotFound = errors.New("no data for requested key")
)

// priceHistory holds a date-ordered list of fuel price quotes for one airport.
type priceHistory struct {
	Quotes []planning.FuelPriceQuote
}

// MemoryStore is a concurrency-safe in-memory implementation of the
// planning.DataProvider contract, with write-side methods the feed layer
// uses to refresh it.
type MemoryStore struct {
	mu sync.RWMutex

	// key: upper-cased airport code
	prices   map[string]*priceHistory
	aircraft map[string]planning.AircraftProfile

	// key: feed source name
	windSamples map[string][]planning.WindSample
	zones       map[string][]planning.TurbulenceZone

	// retention configuration for price history
	maxHistory int           // max quotes per airport (0 = unlimited)
	maxAge     time.Duration // max quote age (0 = unlimited)
}

// NewMemoryStore creates a MemoryStore with optional price retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		prices:      make(map[string]*priceHistory),
		aircraft:    make(map[string]planning.AircraftProfile),
		windSamples: make(map[string][]planning.WindSample),
		zones:       make(map[string][]planning.TurbulenceZone),
		maxHistory:  maxHistory,
		maxAge:      maxAge,
	}
}

// PutFuelPrice appends a quote to the airport's history and enforces retention.
func (s *MemoryStore) PutFuelPrice(quote planning.FuelPriceQuote) {
	key := airportKey(quote.Airport)

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.prices[key]
	if !ok {
		history = &priceHistory{}
		s.prices[key] = history
	}

	history.Quotes = append(history.Quotes, quote)
	sort.SliceStable(history.Quotes, func(i, j int) bool {
		return history.Quotes[i].EffectiveDate.Before(history.Quotes[j].EffectiveDate)
	})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.Quotes) > s.maxHistory {
		over := len(history.Quotes) - s.maxHistory
		history.Quotes = history.Quotes[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.Quotes); i++ {
			if !history.Quotes[i].EffectiveDate.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			history.Quotes = history.Quotes[i:]
		}
	}
}

// PutAircraftProfile upserts a static aircraft reference row.
func (s *MemoryStore) PutAircraftProfile(profile planning.AircraftProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aircraft[strings.ToUpper(profile.IATACode)] = profile
}

// ReplaceWindSamples swaps the full sample set contributed by one feed source.
func (s *MemoryStore) ReplaceWindSamples(source string, samples []planning.WindSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windSamples[source] = samples
}

// ReplaceTurbulenceZones swaps the zone set contributed by one feed source.
func (s *MemoryStore) ReplaceTurbulenceZones(source string, zones []planning.TurbulenceZone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[source] = zones
}

// GetLatestFuelPrice returns the most recent quote for an airport.
func (s *MemoryStore) GetLatestFuelPrice(_ context.Context, airport string) (planning.FuelPriceQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.prices[airportKey(airport)]
	if !ok || len(history.Quotes) == 0 {
		return planning.FuelPriceQuote{}, ErrNotFound
	}
	return history.Quotes[len(history.Quotes)-1], nil
}

// GetAircraftProfile returns the reference row for a fleet type.
func (s *MemoryStore) GetAircraftProfile(_ context.Context, iataCode string) (planning.AircraftProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.aircraft[strings.ToUpper(iataCode)]
	if !ok {
		return planning.AircraftProfile{}, ErrNotFound
	}
	return profile, nil
}

// GetFuelPriceHistory returns the airport's quotes from the last windowDays,
// ascending by effective date. An unknown airport yields an empty history.
func (s *MemoryStore) GetFuelPriceHistory(_ context.Context, airport string, windowDays int) ([]planning.FuelPricePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.prices[airportKey(airport)]
	if !ok {
		return nil, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)
	points := make([]planning.FuelPricePoint, 0, len(history.Quotes))
	for _, q := range history.Quotes {
		if q.EffectiveDate.Before(cutoff) {
			continue
		}
		points = append(points, planning.FuelPricePoint{
			Date:           q.EffectiveDate,
			PricePerGallon: q.PricePerGallon,
			Supplier:       q.Supplier,
		})
	}
	return points, nil
}

// GetWindSamples returns unexpired samples inside the box at the requested
// altitudes, capped at limit rows.
func (s *MemoryStore) GetWindSamples(_ context.Context, box planning.BoundingBox, altitudesFt []int, validAfter time.Time, limit int) ([]planning.WindSample, error) {
	wanted := make(map[int]bool, len(altitudesFt))
	for _, alt := range altitudesFt {
		wanted[alt] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []planning.WindSample
	for _, samples := range s.windSamples {
		for _, sample := range samples {
			if !wanted[sample.AltitudeFt] {
				continue
			}
			if !box.Contains(sample.Latitude, sample.Longitude) {
				continue
			}
			if sample.ForecastValidTime.Before(validAfter) {
				continue
			}
			result = append(result, sample)
			if limit > 0 && len(result) >= limit {
				return result, nil
			}
		}
	}
	return result, nil
}

// GetTurbulenceZones returns unexpired zones whose center lies in the box and
// whose altitude falls inside the band, ordered by probability descending.
func (s *MemoryStore) GetTurbulenceZones(_ context.Context, box planning.BoundingBox, band planning.AltitudeBand, validAfter time.Time) ([]planning.TurbulenceZone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []planning.TurbulenceZone
	for _, zones := range s.zones {
		for _, zone := range zones {
			if !box.Contains(zone.Location.Latitude, zone.Location.Longitude) {
				continue
			}
			if !band.Contains(zone.AltitudeFt) {
				continue
			}
			if zone.ValidUntil.Before(validAfter) {
				continue
			}
			result = append(result, zone)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Probability > result[j].Probability
	})
	return result, nil
}

// GetTurbulenceZone returns one zone by id, regardless of validity window.
func (s *MemoryStore) GetTurbulenceZone(_ context.Context, id string) (planning.TurbulenceZone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, zones := range s.zones {
		for _, zone := range zones {
			if zone.ID == id {
				return zone, nil
			}
		}
	}
	return planning.TurbulenceZone{}, ErrNotFound
}

func airportKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
