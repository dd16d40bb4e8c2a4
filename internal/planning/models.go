package planning

import (
	"time"
)

// Severity represents a normalized turbulence intensity band.
type Severity string

const (
	SeverityUnknown  Severity = "UNKNOWN"
	SeverityLight    Severity = "LIGHT"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// Level returns the ordinal rank of a severity band. Higher is worse.
func (s Severity) Level() int {
	switch s {
	case SeverityLight:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	default:
		return 0
	}
}

// Color returns the display color associated with a severity band.
func (s Severity) Color() string {
	switch s {
	case SeverityLight:
		return "#FFD60A"
	case SeverityModerate:
		return "#FF9F0A"
	case SeveritySevere:
		return "#FF453A"
	default:
		return "#8E8E93"
	}
}

// RiskRecommendation is the routing advice derived from a turbulence assessment.
type RiskRecommendation string

const (
	RecommendNoAction          RiskRecommendation = "NO_ACTION"
	RecommendMonitor           RiskRecommendation = "MONITOR"
	RecommendConsiderAvoidance RiskRecommendation = "CONSIDER_AVOIDANCE"
	RecommendAvoid             RiskRecommendation = "AVOID"
)

// Confidence grades how robust a tankering recommendation is.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FuelPriceQuote is the latest known fuel price at an airport.
// Immutable snapshot produced by the data provider.
type FuelPriceQuote struct {
	Airport        string    `json:"airport"`
	PricePerGallon float64   `json:"pricePerGallon"`
	PricePerLiter  float64   `json:"pricePerLiter"`
	Supplier       string    `json:"supplier"`
	EffectiveDate  time.Time `json:"effectiveDate"`
}

// FuelPriceComparison pairs origin and destination quotes with derived deltas.
type FuelPriceComparison struct {
	Origin               FuelPriceQuote `json:"origin"`
	Destination          FuelPriceQuote `json:"destination"`
	PerGallonDifference  float64        `json:"perGallonDifference"`
	PercentageDifference float64        `json:"percentageDifference"`
}

// FuelPricePoint is one row of an airport's price history.
type FuelPricePoint struct {
	Date           time.Time `json:"date"`
	PricePerGallon float64   `json:"pricePerGallon"`
	Supplier       string    `json:"supplier"`
}

// AircraftProfile is static reference data for a fleet type.
type AircraftProfile struct {
	IATACode                string  `json:"iataCode"`
	FuelBurnPerNm           float64 `json:"fuelBurnPerNm"` // gallons per nautical mile
	MaxFuelCapacityGallons  float64 `json:"maxFuelCapacityGallons"`
	OperatingEmptyWeightLbs float64 `json:"operatingEmptyWeightLbs"`
}

// Tankering decision reasons.
const (
	ReasonInsufficientCapacity = "insufficient capacity"
	ReasonPriceDiffTooSmall    = "price difference too small"
	ReasonBelowSavingsFloor    = "net savings below threshold"
	ReasonTankeringBeneficial  = "tankering beneficial"
)

// TankeringBreakdown itemizes the fuel and cost figures behind a plan.
type TankeringBreakdown struct {
	TripFuelGallons     float64 `json:"tripFuelGallons"`
	ReserveFuelGallons  float64 `json:"reserveFuelGallons"`
	RequiredFuelGallons float64 `json:"requiredFuelGallons"`
	ExtraBurnGallons    float64 `json:"extraBurnGallons"`
	GrossSavings        float64 `json:"grossSavings"`
	PenaltyCost         float64 `json:"penaltyCost"`
}

// TankeringPlan is the fuel-economics decision for one leg.
// When Recommended is false, TankerAmountGallons is zero.
type TankeringPlan struct {
	Recommended         bool                 `json:"recommended"`
	Reason              string               `json:"reason"`
	TankerAmountGallons float64              `json:"tankerAmountGallons"`
	TankerAmountLbs     float64              `json:"tankerAmountLbs"`
	Savings             float64              `json:"savings"`
	Confidence          Confidence           `json:"confidence"`
	Comparison          *FuelPriceComparison `json:"comparison,omitempty"`
	Breakdown           *TankeringBreakdown  `json:"breakdown,omitempty"`
}

// Waypoint is a sampled position along the great-circle route.
// Index is the 0-based position, inclusive of both endpoints.
type Waypoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Index     int     `json:"index"`
}

// WindSample is one forecast grid point from the winds-aloft feed.
type WindSample struct {
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	AltitudeFt           int       `json:"altitudeFt"`
	WindSpeedKnots       float64   `json:"windSpeedKnots"`
	WindDirectionDegrees float64   `json:"windDirectionDegrees"`
	TemperatureCelsius   float64   `json:"temperatureCelsius"`
	ForecastValidTime    time.Time `json:"forecastValidTime"`
}

// WindComponent resolves a wind vector against a course.
// Headwind and tailwind are negatives of each other; positive tailwind
// assists forward travel.
type WindComponent struct {
	HeadwindKnots  float64 `json:"headwind"`
	TailwindKnots  float64 `json:"tailwind"`
	CrosswindKnots float64 `json:"crosswind"`
}

// InterpolatedWind is the wind estimate at a single waypoint and altitude.
type InterpolatedWind struct {
	WindSpeedKnots       float64 `json:"windSpeedKnots"`
	WindDirectionDegrees float64 `json:"windDirectionDegrees"`
	TemperatureCelsius   float64 `json:"temperatureCelsius"`
}

// AltitudeWindProfile summarizes the wind along the route at one altitude.
type AltitudeWindProfile struct {
	AltitudeFt       int     `json:"altitudeFt"`
	AvgTailwindKnots float64 `json:"avgTailwindKnots"`
	AvgHeadwindKnots float64 `json:"avgHeadwindKnots"`
}

// RouteWindAnalysis is the cruise-altitude decision for one route.
// Profiles are sorted by average tailwind descending; the first entry is
// the optimal altitude.
type RouteWindAnalysis struct {
	Waypoints          []Waypoint            `json:"waypoints"`
	Samples            []WindSample          `json:"samples"`
	CourseDegrees      float64               `json:"courseDegrees"`
	DistanceNm         float64               `json:"distanceNm"`
	Profiles           []AltitudeWindProfile `json:"profiles"`
	OptimalAltitudeFt  int                   `json:"optimalAltitudeFt"`
	TimeSavingsMinutes float64               `json:"timeSavingsMinutes"`
	WindAdvantageKnots float64               `json:"windAdvantageKnots"`
}

// TurbulenceZone is one forecast turbulence area from an advisory feed.
type TurbulenceZone struct {
	ID              string      `json:"id"`
	Location        Coordinates `json:"location"`
	AltitudeFt      int         `json:"altitudeFt"`
	AltitudeRangeFt int         `json:"altitudeRangeFt"`
	Severity        Severity    `json:"severity"`
	Probability     float64     `json:"probability"` // [0, 1]
	RadiusNm        float64     `json:"radiusNm"`
	ValidUntil      time.Time   `json:"validUntil"`
	DataSource      string      `json:"dataSource"`
}

// RiskSummary tallies zones per severity band, independent of the
// probability thresholds that drive the recommendation.
type RiskSummary struct {
	Severe   int `json:"severe"`
	Moderate int `json:"moderate"`
	Light    int `json:"light"`
}

// RouteRiskAssessment is the turbulence decision for one route corridor.
// Zones are ordered by probability descending.
type RouteRiskAssessment struct {
	Detected       bool               `json:"detected"`
	Zones          []TurbulenceZone   `json:"zones,omitempty"`
	Recommendation RiskRecommendation `json:"recommendation"`
	Message        string             `json:"message"`
	Summary        RiskSummary        `json:"summary"`
}

// DetourEstimate is the cost of routing around a turbulence zone.
type DetourEstimate struct {
	ZoneID                string `json:"zoneId"`
	DetourDistanceNm      int    `json:"detourDistanceNm"`
	AdditionalFuelGallons int    `json:"additionalFuelGallons"`
	AdditionalTimeMinutes int    `json:"additionalTimeMinutes"`
}
