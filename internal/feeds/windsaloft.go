package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/routewise/flight-advisor/internal/planning"
)

// WindsAloftFeed fetches forecast wind grids at the cruise altitudes the
// optimizer evaluates.
type WindsAloftFeed struct {
	name        string
	baseURL     string
	altitudesFt []int
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewWindsAloftFeed creates a feed scoped to the given altitudes.
func NewWindsAloftFeed(client *http.Client, baseURL string, altitudesFt []int) *WindsAloftFeed {
	return &WindsAloftFeed{
		name:        "windsaloft",
		baseURL:     baseURL,
		altitudesFt: altitudesFt,
		httpCfg:     defaultHTTPClientConfig(client),
		circuit:     newFeedBreaker("windsaloft"),
	}
}

func (f *WindsAloftFeed) Name() string {
	return f.name
}

type windsAloftResponse struct {
	Samples []struct {
		Latitude             float64   `json:"latitude"`
		Longitude            float64   `json:"longitude"`
		AltitudeFt           int       `json:"altitudeFt"`
		WindSpeedKnots       float64   `json:"windSpeedKnots"`
		WindDirectionDegrees float64   `json:"windDirectionDegrees"`
		TemperatureCelsius   float64   `json:"temperatureCelsius"`
		ForecastValidTime    time.Time `json:"forecastValidTime"`
	} `json:"samples"`
}

// Fetch returns the current forecast grid for the configured altitudes.
func (f *WindsAloftFeed) Fetch(ctx context.Context) ([]planning.WindSample, error) {
	if f.baseURL == "" {
		return nil, fmt.Errorf("winds aloft feed url is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		alts := make([]string, 0, len(f.altitudesFt))
		for _, alt := range f.altitudesFt {
			alts = append(alts, strconv.Itoa(alt))
		}
		values := url.Values{}
		values.Set("altitudes", strings.Join(alts, ","))
		return http.NewRequest(http.MethodGet, f.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, f.httpCfg, f.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("winds aloft feed: %w", err)
	}
	defer resp.Body.Close()

	var payload windsAloftResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("winds aloft feed: decode: %w", err)
	}

	samples := make([]planning.WindSample, 0, len(payload.Samples))
	for _, s := range payload.Samples {
		if s.AltitudeFt <= 0 {
			continue
		}
		samples = append(samples, planning.WindSample{
			Latitude:             s.Latitude,
			Longitude:            s.Longitude,
			AltitudeFt:           s.AltitudeFt,
			WindSpeedKnots:       s.WindSpeedKnots,
			WindDirectionDegrees: s.WindDirectionDegrees,
			TemperatureCelsius:   s.TemperatureCelsius,
			ForecastValidTime:    s.ForecastValidTime.UTC(),
		})
	}
	return samples, nil
}
