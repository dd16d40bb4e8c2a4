package planning

import (
	"context"
	"time"
)

// BoundingBox is a geographic range filter in decimal degrees.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box (inclusive).
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Expand returns the box grown by margin degrees on every side.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	return BoundingBox{
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
	}
}

// BoxAround builds the tight bounding box of two points.
func BoxAround(a, b Coordinates) BoundingBox {
	box := BoundingBox{MinLat: a.Latitude, MaxLat: a.Latitude, MinLon: a.Longitude, MaxLon: a.Longitude}
	if b.Latitude < box.MinLat {
		box.MinLat = b.Latitude
	}
	if b.Latitude > box.MaxLat {
		box.MaxLat = b.Latitude
	}
	if b.Longitude < box.MinLon {
		box.MinLon = b.Longitude
	}
	if b.Longitude > box.MaxLon {
		box.MaxLon = b.Longitude
	}
	return box
}

// AltitudeBand is an inclusive altitude range filter in feet.
type AltitudeBand struct {
	MinFt int
	MaxFt int
}

// Contains reports whether the altitude lies inside the band (inclusive).
func (a AltitudeBand) Contains(altitudeFt int) bool {
	return altitudeFt >= a.MinFt && altitudeFt <= a.MaxFt
}

// BandAround builds the band centered on altitudeFt with the given half width.
func BandAround(altitudeFt, halfWidthFt int) AltitudeBand {
	return AltitudeBand{MinFt: altitudeFt - halfWidthFt, MaxFt: altitudeFt + halfWidthFt}
}

// DataProvider abstracts the backing store the decision components read from.
// Point lookups return ErrNotFound-style errors from the implementation when
// no row exists; range queries return empty slices.
type DataProvider interface {
	GetLatestFuelPrice(ctx context.Context, airport string) (FuelPriceQuote, error)
	GetAircraftProfile(ctx context.Context, iataCode string) (AircraftProfile, error)
	GetFuelPriceHistory(ctx context.Context, airport string, windowDays int) ([]FuelPricePoint, error)
	GetWindSamples(ctx context.Context, box BoundingBox, altitudesFt []int, validAfter time.Time, limit int) ([]WindSample, error)
	GetTurbulenceZones(ctx context.Context, box BoundingBox, band AltitudeBand, validAfter time.Time) ([]TurbulenceZone, error)
}
