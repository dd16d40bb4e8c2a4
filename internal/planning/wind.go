package planning

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

// EarthRadiusNm is the mean Earth radius in nautical miles.
const EarthRadiusNm = 3440.065

// WindPolicy holds the route-wind analysis constants.
type WindPolicy struct {
	// CandidateAltitudesFt are the cruise altitudes evaluated.
	CandidateAltitudesFt []int
	// BaselineAltitudeFt is the reference cruise altitude savings are
	// measured against.
	BaselineAltitudeFt int
	// CruiseSpeedKnots is the still-air ground speed baseline.
	CruiseSpeedKnots float64
	// WaypointSegments is the number of great-circle segments sampled;
	// the route carries WaypointSegments+1 waypoints.
	WaypointSegments int
	// BoundingBoxMarginDeg pads the wind-sample query box.
	BoundingBoxMarginDeg float64
	// SampleLimit caps the number of wind rows fetched.
	SampleLimit int
}

// DefaultWindPolicy returns the standard analysis constants.
func DefaultWindPolicy() WindPolicy {
	return WindPolicy{
		CandidateAltitudesFt: []int{35000, 37000, 39000, 41000},
		BaselineAltitudeFt:   37000,
		CruiseSpeedKnots:     450,
		WaypointSegments:     5,
		BoundingBoxMarginDeg: 1.0,
		SampleLimit:          100,
	}
}

// RouteWindOptimizer selects the cruise altitude minimizing flight time.
// Stateless; safe for concurrent use.
type RouteWindOptimizer struct {
	provider DataProvider
	policy   WindPolicy
}

// NewRouteWindOptimizer creates an optimizer reading from the given provider.
func NewRouteWindOptimizer(provider DataProvider, policy WindPolicy) *RouteWindOptimizer {
	return &RouteWindOptimizer{provider: provider, policy: policy}
}

// GreatCircleDistanceNm computes the haversine distance in nautical miles.
func GreatCircleDistanceNm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1R := lat1 * math.Pi / 180
	lon1R := lon1 * math.Pi / 180
	lat2R := lat2 * math.Pi / 180
	lon2R := lon2 * math.Pi / 180

	dLat := lat2R - lat1R
	dLon := lon2R - lon1R

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1R)*math.Cos(lat2R)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusNm * c
}

// GreatCircleWaypoints samples segments+1 evenly spaced points along the
// great-circle arc between origin and destination, endpoints included,
// using spherical linear interpolation.
func GreatCircleWaypoints(origin, destination Coordinates, segments int) []Waypoint {
	if segments < 1 {
		segments = 1
	}

	lat1 := origin.Latitude * math.Pi / 180
	lon1 := origin.Longitude * math.Pi / 180
	lat2 := destination.Latitude * math.Pi / 180
	lon2 := destination.Longitude * math.Pi / 180

	cosD := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1)
	// Clamp against floating-point drift before acos.
	cosD = math.Max(-1, math.Min(1, cosD))
	d := math.Acos(cosD)

	waypoints := make([]Waypoint, 0, segments+1)

	// Identical endpoints: slerp weights divide by sin(0).
	if d == 0 {
		for i := 0; i <= segments; i++ {
			waypoints = append(waypoints, Waypoint{
				Latitude:  origin.Latitude,
				Longitude: origin.Longitude,
				Index:     i,
			})
		}
		return waypoints
	}

	sinD := math.Sin(d)
	for i := 0; i <= segments; i++ {
		f := float64(i) / float64(segments)
		a := math.Sin((1-f)*d) / sinD
		b := math.Sin(f*d) / sinD

		x := a*math.Cos(lat1)*math.Cos(lon1) + b*math.Cos(lat2)*math.Cos(lon2)
		y := a*math.Cos(lat1)*math.Sin(lon1) + b*math.Cos(lat2)*math.Sin(lon2)
		z := a*math.Sin(lat1) + b*math.Sin(lat2)

		lat := math.Atan2(z, math.Sqrt(x*x+y*y))
		lon := math.Atan2(y, x)

		waypoints = append(waypoints, Waypoint{
			Latitude:  lat * 180 / math.Pi,
			Longitude: lon * 180 / math.Pi,
			Index:     i,
		})
	}

	return waypoints
}

// CourseBearing computes the initial great-circle bearing in degrees [0, 360).
func CourseBearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1R := lat1 * math.Pi / 180
	lat2R := lat2 * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2R)
	x := math.Cos(lat1R)*math.Sin(lat2R) - math.Sin(lat1R)*math.Cos(lat2R)*math.Cos(dLon)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// ComputeWindComponent resolves a wind vector against a course.
// Positive tailwind assists forward travel.
func ComputeWindComponent(windSpeedKnots, windDirectionDegrees, courseDegrees float64) WindComponent {
	angle := (windDirectionDegrees - courseDegrees + 180) * math.Pi / 180
	headwindRaw := windSpeedKnots * math.Cos(angle)

	return WindComponent{
		HeadwindKnots:  -headwindRaw,
		TailwindKnots:  headwindRaw,
		CrosswindKnots: windSpeedKnots * math.Sin(angle),
	}
}

// InterpolateWind estimates the wind at a waypoint and altitude by
// nearest-neighbor over the samples at that altitude. With no samples at the
// altitude it returns the calm, -50 C sentinel rather than an error.
func InterpolateWind(wp Waypoint, samples []WindSample, altitudeFt int) InterpolatedWind {
	var (
		nearest     *WindSample
		nearestDist float64
	)

	for i := range samples {
		s := &samples[i]
		if s.AltitudeFt != altitudeFt {
			continue
		}
		dist := GreatCircleDistanceNm(wp.Latitude, wp.Longitude, s.Latitude, s.Longitude)
		if nearest == nil || dist < nearestDist {
			nearest = s
			nearestDist = dist
		}
	}

	if nearest == nil {
		return InterpolatedWind{TemperatureCelsius: -50}
	}

	return InterpolatedWind{
		WindSpeedKnots:       nearest.WindSpeedKnots,
		WindDirectionDegrees: nearest.WindDirectionDegrees,
		TemperatureCelsius:   nearest.TemperatureCelsius,
	}
}

// AnalyzeRouteWinds evaluates every candidate altitude over the route and
// picks the one with the strongest average tailwind. Wind data is essential
// to the altitude decision, so provider failures propagate to the caller.
func (o *RouteWindOptimizer) AnalyzeRouteWinds(ctx context.Context, origin, destination Coordinates) (*RouteWindAnalysis, error) {
	waypoints := GreatCircleWaypoints(origin, destination, o.policy.WaypointSegments)

	box := BoxAround(origin, destination).Expand(o.policy.BoundingBoxMarginDeg)
	samples, err := o.provider.GetWindSamples(ctx, box, o.policy.CandidateAltitudesFt, time.Now().UTC(), o.policy.SampleLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch wind samples: %w", err)
	}

	course := CourseBearing(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
	distance := GreatCircleDistanceNm(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)

	profiles := make([]AltitudeWindProfile, 0, len(o.policy.CandidateAltitudesFt))
	for _, alt := range o.policy.CandidateAltitudesFt {
		var sumTailwind float64
		for _, wp := range waypoints {
			wind := InterpolateWind(wp, samples, alt)
			component := ComputeWindComponent(wind.WindSpeedKnots, wind.WindDirectionDegrees, course)
			sumTailwind += component.TailwindKnots
		}
		avg := sumTailwind / float64(len(waypoints))
		profiles = append(profiles, AltitudeWindProfile{
			AltitudeFt:       alt,
			AvgTailwindKnots: round1(avg),
			AvgHeadwindKnots: round1(-avg),
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].AvgTailwindKnots > profiles[j].AvgTailwindKnots
	})

	optimal := profiles[0]
	baseline := o.baselineProfile(profiles)

	speed := o.policy.CruiseSpeedKnots
	savings := 60 * distance * (1/(speed+baseline.AvgTailwindKnots) - 1/(speed+optimal.AvgTailwindKnots))
	if savings < 0 {
		savings = 0
	}

	return &RouteWindAnalysis{
		Waypoints:          waypoints,
		Samples:            samples,
		CourseDegrees:      round1(course),
		DistanceNm:         round1(distance),
		Profiles:           profiles,
		OptimalAltitudeFt:  optimal.AltitudeFt,
		TimeSavingsMinutes: round1(savings),
		WindAdvantageKnots: round1(optimal.AvgTailwindKnots - baseline.AvgTailwindKnots),
	}, nil
}

// baselineProfile finds the reference cruise altitude among the sorted
// profiles, falling back to the second-best when it is not a candidate.
func (o *RouteWindOptimizer) baselineProfile(profiles []AltitudeWindProfile) AltitudeWindProfile {
	for _, p := range profiles {
		if p.AltitudeFt == o.policy.BaselineAltitudeFt {
			return p
		}
	}
	if len(profiles) > 1 {
		return profiles[1]
	}
	return profiles[0]
}
