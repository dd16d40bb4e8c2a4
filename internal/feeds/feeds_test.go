package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routewise/flight-advisor/internal/planning"
	"github.com/routewise/flight-advisor/internal/store"
)

func TestFuelPriceFeedFetch(t *testing.T) {
	var gotAirports string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAirports = r.URL.Query().Get("airports")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prices":[
			{"airport":"pty","pricePerGallon":3.45,"pricePerLiter":0.91,"supplier":"acme","effectiveDate":"2026-08-30T00:00:00Z"},
			{"airport":"","pricePerGallon":9.99},
			{"airport":"BOG","pricePerGallon":0}
		]}`))
	}))
	defer srv.Close()

	feed := NewFuelPriceFeed(srv.Client(), srv.URL, []string{"PTY", "BOG"})
	quotes, err := feed.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "PTY,BOG", gotAirports)

	// Rows without an airport or with a non-positive price are dropped.
	require.Len(t, quotes, 1)
	assert.Equal(t, "PTY", quotes[0].Airport)
	assert.InDelta(t, 3.45, quotes[0].PricePerGallon, 1e-9)
}

func TestFuelPriceFeedRequiresURL(t *testing.T) {
	feed := NewFuelPriceFeed(http.DefaultClient, "", nil)
	_, err := feed.Fetch(context.Background())
	require.Error(t, err)
}

func TestWindsAloftFeedFetch(t *testing.T) {
	var gotAltitudes string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAltitudes = r.URL.Query().Get("altitudes")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"samples":[
			{"latitude":7,"longitude":-77,"altitudeFt":39000,"windSpeedKnots":50,"windDirectionDegrees":270,
			 "temperatureCelsius":-54,"forecastValidTime":"2026-08-30T12:00:00Z"},
			{"latitude":7,"longitude":-77,"altitudeFt":0,"windSpeedKnots":10}
		]}`))
	}))
	defer srv.Close()

	feed := NewWindsAloftFeed(srv.Client(), srv.URL, []int{35000, 37000, 39000, 41000})
	samples, err := feed.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "35000,37000,39000,41000", gotAltitudes)
	require.Len(t, samples, 1)
	assert.Equal(t, 39000, samples[0].AltitudeFt)
	assert.InDelta(t, -54, samples[0].TemperatureCelsius, 1e-9)
}

func TestTurbulenceFeedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"advisories":[
			{"id":"adv-1","latitude":6,"longitude":-76,"altitudeFt":38000,"altitudeRangeFt":2000,
			 "severity":"severe","probability":0.8,"radiusNm":45,"validUntil":"2026-08-30T18:00:00Z","source":"pirep"},
			{"latitude":5,"longitude":-77,"altitudeFt":37000,"severity":"bumpy","probability":1.7,"radiusNm":20,
			 "validUntil":"2026-08-30T18:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	feed := NewTurbulenceFeed(srv.Client(), srv.URL)
	zones, err := feed.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "adv-1", zones[0].ID)
	assert.Equal(t, planning.SeveritySevere, zones[0].Severity)

	// Missing id gets generated; unknown severity and out-of-range
	// probability are normalized.
	assert.NotEmpty(t, zones[1].ID)
	assert.Equal(t, planning.SeverityUnknown, zones[1].Severity)
	assert.InDelta(t, 1.0, zones[1].Probability, 1e-9)
}

func TestParseSeverity(t *testing.T) {
	assert.Equal(t, planning.SeverityLight, parseSeverity(" light "))
	assert.Equal(t, planning.SeverityModerate, parseSeverity("MODERATE"))
	assert.Equal(t, planning.SeveritySevere, parseSeverity("Severe"))
	assert.Equal(t, planning.SeverityUnknown, parseSeverity("chop"))
}

func TestFeedServerErrorIsRetriedThenReported(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	feed := NewTurbulenceFeed(srv.Client(), srv.URL)
	// Shrink the backoff so the test stays fast.
	feed.httpCfg.Backoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

	_, err := feed.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRefreshAllPartialFailure(t *testing.T) {
	fuelSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices":[{"airport":"PTY","pricePerGallon":3.45,"effectiveDate":"2026-08-30T00:00:00Z"}]}`))
	}))
	defer fuelSrv.Close()

	memStore := store.NewMemoryStore(0, 0)
	fuel := NewFuelPriceFeed(fuelSrv.Client(), fuelSrv.URL, []string{"PTY"})
	turbulence := NewTurbulenceFeed(fuelSrv.Client(), "http://127.0.0.1:1/advisories")
	turbulence.httpCfg.Backoff = BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond}

	svc := NewService(memStore, fuel, nil, turbulence)
	err := svc.RefreshAll(context.Background())
	require.NoError(t, err)

	// The fuel feed's data landed even though the turbulence feed failed.
	quote, err := memStore.GetLatestFuelPrice(context.Background(), "PTY")
	require.NoError(t, err)
	assert.InDelta(t, 3.45, quote.PricePerGallon, 1e-9)
}

func TestRefreshAllNoFeeds(t *testing.T) {
	svc := NewService(store.NewMemoryStore(0, 0), nil, nil, nil)
	require.Error(t, svc.RefreshAll(context.Background()))
}
