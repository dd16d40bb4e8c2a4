package planning

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"
)

// TurbulencePolicy holds the risk-classification constants.
type TurbulencePolicy struct {
	// AltitudeBandHalfWidthFt pads the cruise altitude into a query band.
	AltitudeBandHalfWidthFt int
	// BoundingBoxMarginDeg pads the route corridor query box.
	BoundingBoxMarginDeg float64
	// SevereProbabilityFloor is the probability at which a severe zone
	// forces an avoidance recommendation.
	SevereProbabilityFloor float64
	// ModerateProbabilityFloor is the probability at which a moderate zone
	// suggests considering avoidance.
	ModerateProbabilityFloor float64
	// DetourFractionOfRadius sizes the assumed detour around a zone.
	DetourFractionOfRadius float64
	// CruiseSpeedKnots converts detour distance into added time.
	CruiseSpeedKnots float64
}

// DefaultTurbulencePolicy returns the standard classification constants.
func DefaultTurbulencePolicy() TurbulencePolicy {
	return TurbulencePolicy{
		AltitudeBandHalfWidthFt:  2000,
		BoundingBoxMarginDeg:     1.0,
		SevereProbabilityFloor:   0.7,
		ModerateProbabilityFloor: 0.6,
		DetourFractionOfRadius:   0.5,
		CruiseSpeedKnots:         450,
	}
}

// TurbulenceRiskAssessor classifies forecast turbulence along a route
// corridor. Stateless; safe for concurrent use.
type TurbulenceRiskAssessor struct {
	provider DataProvider
	policy   TurbulencePolicy
}

// NewTurbulenceRiskAssessor creates an assessor reading from the given provider.
func NewTurbulenceRiskAssessor(provider DataProvider, policy TurbulencePolicy) *TurbulenceRiskAssessor {
	return &TurbulenceRiskAssessor{provider: provider, policy: policy}
}

// DetectTurbulence assesses the corridor between origin and destination at
// the cruise altitude. Absence of turbulence data must never block route
// planning, so provider failures degrade to a no-data assessment.
func (a *TurbulenceRiskAssessor) DetectTurbulence(ctx context.Context, origin, destination Coordinates, cruiseAltitudeFt int) *RouteRiskAssessment {
	box := BoxAround(origin, destination).Expand(a.policy.BoundingBoxMarginDeg)
	band := BandAround(cruiseAltitudeFt, a.policy.AltitudeBandHalfWidthFt)

	zones, err := a.provider.GetTurbulenceZones(ctx, box, band, time.Now().UTC())
	if err != nil {
		log.Printf("turbulence: zone query failed, assuming no data: %v", err)
		return &RouteRiskAssessment{
			Detected:       false,
			Recommendation: RecommendNoAction,
			Message:        "Turbulence data unavailable; no assessment performed",
		}
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].Probability > zones[j].Probability
	})

	var summary RiskSummary
	for _, z := range zones {
		switch z.Severity {
		case SeveritySevere:
			summary.Severe++
		case SeverityModerate:
			summary.Moderate++
		case SeverityLight:
			summary.Light++
		}
	}

	recommendation := a.classify(zones)

	return &RouteRiskAssessment{
		Detected:       len(zones) > 0,
		Zones:          zones,
		Recommendation: recommendation,
		Message:        riskMessage(recommendation, len(zones)),
		Summary:        summary,
	}
}

// classify applies the precedence rules: a probable severe zone dominates,
// then a probable moderate zone, then any forecast zone at all.
func (a *TurbulenceRiskAssessor) classify(zones []TurbulenceZone) RiskRecommendation {
	for _, z := range zones {
		if z.Severity == SeveritySevere && z.Probability >= a.policy.SevereProbabilityFloor {
			return RecommendAvoid
		}
	}
	for _, z := range zones {
		if z.Severity == SeverityModerate && z.Probability >= a.policy.ModerateProbabilityFloor {
			return RecommendConsiderAvoidance
		}
	}
	if len(zones) > 0 {
		return RecommendMonitor
	}
	return RecommendNoAction
}

// EstimateDetourCost prices routing around a zone. The assumed detour is a
// fixed fraction of the zone radius; route distance is carried for context
// but does not enter the heuristic.
func (a *TurbulenceRiskAssessor) EstimateDetourCost(zone TurbulenceZone, routeDistanceNm, fuelBurnPerNm float64) DetourEstimate {
	_ = routeDistanceNm

	detour := zone.RadiusNm * a.policy.DetourFractionOfRadius
	return DetourEstimate{
		ZoneID:                zone.ID,
		DetourDistanceNm:      int(math.Round(detour)),
		AdditionalFuelGallons: int(math.Round(detour * fuelBurnPerNm)),
		AdditionalTimeMinutes: int(math.Round(detour / a.policy.CruiseSpeedKnots * 60)),
	}
}

func riskMessage(r RiskRecommendation, zoneCount int) string {
	switch r {
	case RecommendAvoid:
		return "Severe turbulence likely along route; plan an alternate routing"
	case RecommendConsiderAvoidance:
		return "Moderate turbulence likely along route; consider rerouting or an altitude change"
	case RecommendMonitor:
		return fmt.Sprintf("%d turbulence zone(s) forecast along route; continue monitoring", zoneCount)
	default:
		return "No significant turbulence forecast along route"
	}
}
