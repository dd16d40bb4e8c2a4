package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routewise/flight-advisor/internal/planning"
)

func quoteAt(airport string, price float64, ts time.Time) planning.FuelPriceQuote {
	return planning.FuelPriceQuote{
		Airport:        airport,
		PricePerGallon: price,
		Supplier:       "acme",
		EffectiveDate:  ts,
	}
}

func TestLatestFuelPrice(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.GetLatestFuelPrice(ctx, "PTY")
	assert.ErrorIs(t, err, ErrNotFound)

	s.PutFuelPrice(quoteAt("PTY", 3.10, now.Add(-48*time.Hour)))
	s.PutFuelPrice(quoteAt("PTY", 3.45, now))
	s.PutFuelPrice(quoteAt("pty", 3.20, now.Add(-24*time.Hour))) // out-of-order insert, case-insensitive key

	latest, err := s.GetLatestFuelPrice(ctx, "PTY")
	require.NoError(t, err)
	assert.InDelta(t, 3.45, latest.PricePerGallon, 1e-9)
}

func TestFuelPriceHistoryWindowAndOrder(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()
	now := time.Now().UTC()

	s.PutFuelPrice(quoteAt("BOG", 4.40, now.Add(-40*24*time.Hour))) // outside the window
	s.PutFuelPrice(quoteAt("BOG", 4.10, now.Add(-10*24*time.Hour)))
	s.PutFuelPrice(quoteAt("BOG", 4.20, now.Add(-5*24*time.Hour)))

	points, err := s.GetFuelPriceHistory(ctx, "BOG", 30)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, points[0].Date.Before(points[1].Date))
	assert.InDelta(t, 4.10, points[0].PricePerGallon, 1e-9)
	assert.InDelta(t, 4.20, points[1].PricePerGallon, 1e-9)

	// Unknown airport degrades to an empty history, not an error.
	points, err = s.GetFuelPriceHistory(ctx, "ZZZ", 30)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestFuelPriceRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()

	s.PutFuelPrice(quoteAt("PTY", 3.00, now.Add(-3*time.Hour)))
	s.PutFuelPrice(quoteAt("PTY", 3.10, now.Add(-2*time.Hour)))
	s.PutFuelPrice(quoteAt("PTY", 3.20, now.Add(-1*time.Hour)))

	points, err := s.GetFuelPriceHistory(context.Background(), "PTY", 30)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.InDelta(t, 3.10, points[0].PricePerGallon, 1e-9)
}

func TestAircraftProfileLookup(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()

	_, err := s.GetAircraftProfile(ctx, "738")
	assert.ErrorIs(t, err, ErrNotFound)

	s.PutAircraftProfile(planning.AircraftProfile{
		IATACode:                "738",
		FuelBurnPerNm:           5,
		MaxFuelCapacityGallons:  20000,
		OperatingEmptyWeightLbs: 150000,
	})

	profile, err := s.GetAircraftProfile(ctx, "738")
	require.NoError(t, err)
	assert.InDelta(t, 5, profile.FuelBurnPerNm, 1e-9)
}

func TestWindSampleFiltering(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()
	now := time.Now().UTC()
	valid := now.Add(6 * time.Hour)

	s.ReplaceWindSamples("windsaloft", []planning.WindSample{
		{Latitude: 5, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: valid},
		{Latitude: 5, Longitude: -77, AltitudeFt: 33000, ForecastValidTime: valid},               // altitude not requested
		{Latitude: 30, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: valid},              // outside box
		{Latitude: 5, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: now.Add(-time.Hour)}, // expired
	})

	box := planning.BoundingBox{MinLat: 0, MaxLat: 10, MinLon: -80, MaxLon: -70}
	samples, err := s.GetWindSamples(ctx, box, []int{35000, 37000}, now, 100)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 37000, samples[0].AltitudeFt)
}

func TestWindSampleLimit(t *testing.T) {
	s := NewMemoryStore(0, 0)
	valid := time.Now().UTC().Add(6 * time.Hour)

	samples := make([]planning.WindSample, 10)
	for i := range samples {
		samples[i] = planning.WindSample{Latitude: 5, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: valid}
	}
	s.ReplaceWindSamples("windsaloft", samples)

	box := planning.BoundingBox{MinLat: 0, MaxLat: 10, MinLon: -80, MaxLon: -70}
	got, err := s.GetWindSamples(context.Background(), box, []int{37000}, time.Now().UTC(), 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestReplaceWindSamplesSwapsSource(t *testing.T) {
	s := NewMemoryStore(0, 0)
	valid := time.Now().UTC().Add(6 * time.Hour)
	box := planning.BoundingBox{MinLat: 0, MaxLat: 10, MinLon: -80, MaxLon: -70}

	s.ReplaceWindSamples("windsaloft", []planning.WindSample{
		{Latitude: 5, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: valid},
		{Latitude: 6, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: valid},
	})
	s.ReplaceWindSamples("windsaloft", []planning.WindSample{
		{Latitude: 7, Longitude: -77, AltitudeFt: 37000, ForecastValidTime: valid},
	})

	got, err := s.GetWindSamples(context.Background(), box, []int{37000}, time.Now().UTC(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTurbulenceZoneFilteringAndOrder(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()
	now := time.Now().UTC()
	valid := now.Add(6 * time.Hour)

	s.ReplaceTurbulenceZones("turbulence", []planning.TurbulenceZone{
		{ID: "low", Location: planning.Coordinates{Latitude: 5, Longitude: -77}, AltitudeFt: 37000, Probability: 0.3, ValidUntil: valid},
		{ID: "high", Location: planning.Coordinates{Latitude: 6, Longitude: -76}, AltitudeFt: 38000, Probability: 0.9, ValidUntil: valid},
		{ID: "expired", Location: planning.Coordinates{Latitude: 5, Longitude: -77}, AltitudeFt: 37000, Probability: 0.8, ValidUntil: now.Add(-time.Hour)},
		{ID: "too-high", Location: planning.Coordinates{Latitude: 5, Longitude: -77}, AltitudeFt: 45000, Probability: 0.8, ValidUntil: valid},
		{ID: "elsewhere", Location: planning.Coordinates{Latitude: 40, Longitude: -77}, AltitudeFt: 37000, Probability: 0.8, ValidUntil: valid},
	})

	box := planning.BoundingBox{MinLat: 0, MaxLat: 10, MinLon: -80, MaxLon: -70}
	band := planning.AltitudeBand{MinFt: 35000, MaxFt: 39000}

	zones, err := s.GetTurbulenceZones(ctx, box, band, now)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "high", zones[0].ID)
	assert.Equal(t, "low", zones[1].ID)
}

func TestTurbulenceZoneByID(t *testing.T) {
	s := NewMemoryStore(0, 0)
	ctx := context.Background()

	_, err := s.GetTurbulenceZone(ctx, "z1")
	assert.ErrorIs(t, err, ErrNotFound)

	s.ReplaceTurbulenceZones("turbulence", []planning.TurbulenceZone{
		{ID: "z1", RadiusNm: 40},
	})

	zone, err := s.GetTurbulenceZone(ctx, "z1")
	require.NoError(t, err)
	assert.InDelta(t, 40, zone.RadiusNm, 1e-9)
}
