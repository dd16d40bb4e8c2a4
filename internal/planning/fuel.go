package planning

import (
	"context"
	"log"
	"math"
)

// TankeringPolicy holds the tunable constants of the tankering evaluation.
type TankeringPolicy struct {
	// StepGallons is the granularity of the discrete quantity search.
	StepGallons float64
	// MinSavingsUSD is the floor below which tankering is not worth the
	// operational overhead.
	MinSavingsUSD float64
	// ReserveFraction of trip fuel carried as reserve.
	ReserveFraction float64
	// FuelDensityLbsPerGal converts gallons to pounds.
	FuelDensityLbsPerGal float64
	// MinPriceDiffUSD is the smallest origin-minus-destination price gap
	// worth evaluating.
	MinPriceDiffUSD float64
}

// DefaultTankeringPolicy returns the standard policy constants.
func DefaultTankeringPolicy() TankeringPolicy {
	return TankeringPolicy{
		StepGallons:          100,
		MinSavingsUSD:        50,
		ReserveFraction:      0.10,
		FuelDensityLbsPerGal: 6.7,
		MinPriceDiffUSD:      0.05,
	}
}

// FuelEconomicsEngine decides tankering feasibility and optimal quantity.
// Stateless; safe for concurrent use.
type FuelEconomicsEngine struct {
	provider DataProvider
	policy   TankeringPolicy
}

// NewFuelEconomicsEngine creates an engine reading from the given provider.
func NewFuelEconomicsEngine(provider DataProvider, policy TankeringPolicy) *FuelEconomicsEngine {
	return &FuelEconomicsEngine{provider: provider, policy: policy}
}

// CompareFuelPrices derives the price deltas between two quotes.
// Returns nil if either quote is missing.
func CompareFuelPrices(origin, destination *FuelPriceQuote) *FuelPriceComparison {
	if origin == nil || destination == nil {
		return nil
	}

	diff := destination.PricePerGallon - origin.PricePerGallon
	pct := 0.0
	if origin.PricePerGallon != 0 {
		pct = diff / origin.PricePerGallon * 100
	}

	return &FuelPriceComparison{
		Origin:               *origin,
		Destination:          *destination,
		PerGallonDifference:  round2(diff),
		PercentageDifference: round1(pct),
	}
}

// EvaluateTankering runs the discrete quantity search over the comparison.
// Returns nil when comparison or aircraft data is absent.
func (e *FuelEconomicsEngine) EvaluateTankering(cmp *FuelPriceComparison, aircraft *AircraftProfile, distanceNm float64) *TankeringPlan {
	if cmp == nil || aircraft == nil {
		return nil
	}

	tripFuel := distanceNm * aircraft.FuelBurnPerNm
	reserveFuel := e.policy.ReserveFraction * tripFuel
	requiredFuel := tripFuel + reserveFuel

	breakdown := &TankeringBreakdown{
		TripFuelGallons:     tripFuel,
		ReserveFuelGallons:  reserveFuel,
		RequiredFuelGallons: requiredFuel,
	}

	// Capacity gate comes before any price logic.
	maxTanker := aircraft.MaxFuelCapacityGallons - requiredFuel
	if maxTanker <= 0 {
		return &TankeringPlan{
			Recommended: false,
			Reason:      ReasonInsufficientCapacity,
			Confidence:  ConfidenceLow,
			Comparison:  cmp,
			Breakdown:   breakdown,
		}
	}

	// Tankering only pays when the origin is cheaper.
	priceDiff := cmp.Origin.PricePerGallon - cmp.Destination.PricePerGallon
	if priceDiff <= e.policy.MinPriceDiffUSD {
		return &TankeringPlan{
			Recommended: false,
			Reason:      ReasonPriceDiffTooSmall,
			Confidence:  ConfidenceLow,
			Comparison:  cmp,
			Breakdown:   breakdown,
		}
	}

	// Effective operating weight the penalty ratio is taken against.
	baseWeight := aircraft.OperatingEmptyWeightLbs + requiredFuel*e.policy.FuelDensityLbsPerGal

	var (
		bestGallons float64
		bestNet     float64
		found       bool
	)

	for g := e.policy.StepGallons; g <= maxTanker; g += e.policy.StepGallons {
		extraWeight := g * e.policy.FuelDensityLbsPerGal
		// Each 1% of weight added relative to effective operating weight
		// costs an extra 1% of trip fuel burn.
		penaltyFactor := extraWeight / baseWeight * 0.01
		extraBurn := tripFuel * penaltyFactor

		gross := g * priceDiff
		penalty := extraBurn * cmp.Origin.PricePerGallon
		net := gross - penalty

		if !found || net > bestNet {
			bestGallons = g
			bestNet = net
			found = true
		}
	}

	if !found || bestNet < e.policy.MinSavingsUSD {
		savings := 0.0
		if found {
			savings = round2(bestNet)
		}
		return &TankeringPlan{
			Recommended: false,
			Reason:      ReasonBelowSavingsFloor,
			Savings:     savings,
			Confidence:  ConfidenceLow,
			Comparison:  cmp,
			Breakdown:   breakdown,
		}
	}

	// Recompute the breakdown at the winning quantity.
	extraWeight := bestGallons * e.policy.FuelDensityLbsPerGal
	penaltyFactor := extraWeight / baseWeight * 0.01
	breakdown.ExtraBurnGallons = round2(tripFuel * penaltyFactor)
	breakdown.GrossSavings = round2(bestGallons * priceDiff)
	breakdown.PenaltyCost = round2(breakdown.ExtraBurnGallons * cmp.Origin.PricePerGallon)

	return &TankeringPlan{
		Recommended:         true,
		Reason:              ReasonTankeringBeneficial,
		TankerAmountGallons: bestGallons,
		TankerAmountLbs:     round2(extraWeight),
		Savings:             round2(bestNet),
		Confidence:          confidenceFor(bestNet),
		Comparison:          cmp,
		Breakdown:           breakdown,
	}
}

// ComparePrices fetches the latest quotes for both airports and compares them.
// Missing or errored quotes yield nil; price data is advisory and must never
// fail a planning flow.
func (e *FuelEconomicsEngine) ComparePrices(ctx context.Context, origin, destination string) *FuelPriceComparison {
	originQuote, err := e.provider.GetLatestFuelPrice(ctx, origin)
	if err != nil {
		log.Printf("fuel: no usable price for %s: %v", origin, err)
		return nil
	}
	destQuote, err := e.provider.GetLatestFuelPrice(ctx, destination)
	if err != nil {
		log.Printf("fuel: no usable price for %s: %v", destination, err)
		return nil
	}
	return CompareFuelPrices(&originQuote, &destQuote)
}

// PlanTankering is the full fetch-then-evaluate flow for one leg.
// Returns nil when quotes or the aircraft profile are unavailable.
func (e *FuelEconomicsEngine) PlanTankering(ctx context.Context, origin, destination, aircraftCode string, distanceNm float64) *TankeringPlan {
	cmp := e.ComparePrices(ctx, origin, destination)
	if cmp == nil {
		return nil
	}

	aircraft, err := e.provider.GetAircraftProfile(ctx, aircraftCode)
	if err != nil {
		log.Printf("fuel: no aircraft profile for %s: %v", aircraftCode, err)
		return nil
	}

	return e.EvaluateTankering(cmp, &aircraft, distanceNm)
}

// PriceHistory returns the airport's recent price rows, oldest first.
// Errors degrade to an empty history.
func (e *FuelEconomicsEngine) PriceHistory(ctx context.Context, airport string, windowDays int) []FuelPricePoint {
	points, err := e.provider.GetFuelPriceHistory(ctx, airport, windowDays)
	if err != nil {
		log.Printf("fuel: price history unavailable for %s: %v", airport, err)
		return nil
	}
	return points
}

func confidenceFor(savings float64) Confidence {
	switch {
	case savings >= 200:
		return ConfidenceHigh
	case savings >= 100:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
