package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/routewise/flight-advisor/internal/planning"
)

// TurbulenceFeed fetches active turbulence advisories (PIREP/EDR style rows
// already normalized by the upstream aggregator).
type TurbulenceFeed struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewTurbulenceFeed creates an advisory feed client.
func NewTurbulenceFeed(client *http.Client, baseURL string) *TurbulenceFeed {
	return &TurbulenceFeed{
		name:    "turbulence",
		baseURL: baseURL,
		httpCfg: defaultHTTPClientConfig(client),
		circuit: newFeedBreaker("turbulence"),
	}
}

func (f *TurbulenceFeed) Name() string {
	return f.name
}

type turbulenceResponse struct {
	Advisories []struct {
		ID              string    `json:"id"`
		Latitude        float64   `json:"latitude"`
		Longitude       float64   `json:"longitude"`
		AltitudeFt      int       `json:"altitudeFt"`
		AltitudeRangeFt int       `json:"altitudeRangeFt"`
		Severity        string    `json:"severity"`
		Probability     float64   `json:"probability"`
		RadiusNm        float64   `json:"radiusNm"`
		ValidUntil      time.Time `json:"validUntil"`
		Source          string    `json:"source"`
	} `json:"advisories"`
}

// Fetch returns the active advisories. Rows without an upstream id are
// assigned one so detour lookups can still address them.
func (f *TurbulenceFeed) Fetch(ctx context.Context) ([]planning.TurbulenceZone, error) {
	if f.baseURL == "" {
		return nil, fmt.Errorf("turbulence feed url is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, f.baseURL, nil)
	}

	resp, err := doRequestWithResilience(ctx, f.httpCfg, f.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("turbulence feed: %w", err)
	}
	defer resp.Body.Close()

	var payload turbulenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("turbulence feed: decode: %w", err)
	}

	zones := make([]planning.TurbulenceZone, 0, len(payload.Advisories))
	for _, a := range payload.Advisories {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		zones = append(zones, planning.TurbulenceZone{
			ID:              id,
			Location:        planning.Coordinates{Latitude: a.Latitude, Longitude: a.Longitude},
			AltitudeFt:      a.AltitudeFt,
			AltitudeRangeFt: a.AltitudeRangeFt,
			Severity:        parseSeverity(a.Severity),
			Probability:     clamp01(a.Probability),
			RadiusNm:        a.RadiusNm,
			ValidUntil:      a.ValidUntil.UTC(),
			DataSource:      a.Source,
		})
	}
	return zones, nil
}

func parseSeverity(s string) planning.Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIGHT":
		return planning.SeverityLight
	case "MODERATE":
		return planning.SeverityModerate
	case "SEVERE":
		return planning.SeveritySevere
	default:
		return planning.SeverityUnknown
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
