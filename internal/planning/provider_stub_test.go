package planning

import (
	"context"
	"time"
)

// stubProvider implements DataProvider with overridable function fields.
type stubProvider struct {
	latestFuelPrice  func(airport string) (FuelPriceQuote, error)
	aircraftProfile  func(iataCode string) (AircraftProfile, error)
	fuelPriceHistory func(airport string, windowDays int) ([]FuelPricePoint, error)
	windSamples      func(box BoundingBox, altitudesFt []int, validAfter time.Time, limit int) ([]WindSample, error)
	turbulenceZones  func(box BoundingBox, band AltitudeBand, validAfter time.Time) ([]TurbulenceZone, error)
}

func (s *stubProvider) GetLatestFuelPrice(_ context.Context, airport string) (FuelPriceQuote, error) {
	return s.latestFuelPrice(airport)
}

func (s *stubProvider) GetAircraftProfile(_ context.Context, iataCode string) (AircraftProfile, error) {
	return s.aircraftProfile(iataCode)
}

func (s *stubProvider) GetFuelPriceHistory(_ context.Context, airport string, windowDays int) ([]FuelPricePoint, error) {
	return s.fuelPriceHistory(airport, windowDays)
}

func (s *stubProvider) GetWindSamples(_ context.Context, box BoundingBox, altitudesFt []int, validAfter time.Time, limit int) ([]WindSample, error) {
	return s.windSamples(box, altitudesFt, validAfter, limit)
}

func (s *stubProvider) GetTurbulenceZones(_ context.Context, box BoundingBox, band AltitudeBand, validAfter time.Time) ([]TurbulenceZone, error) {
	return s.turbulenceZones(box, band, validAfter)
}
