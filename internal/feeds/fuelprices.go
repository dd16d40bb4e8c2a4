package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/routewise/flight-advisor/internal/planning"
)

// FuelPriceFeed fetches current fuel price quotes for a set of airports.
type FuelPriceFeed struct {
	name     string
	baseURL  string
	airports []string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewFuelPriceFeed creates a feed scoped to the given airports.
func NewFuelPriceFeed(client *http.Client, baseURL string, airports []string) *FuelPriceFeed {
	return &FuelPriceFeed{
		name:     "fuelprices",
		baseURL:  baseURL,
		airports: airports,
		httpCfg:  defaultHTTPClientConfig(client),
		circuit:  newFeedBreaker("fuelprices"),
	}
}

func (f *FuelPriceFeed) Name() string {
	return f.name
}

type fuelPriceResponse struct {
	Prices []struct {
		Airport        string    `json:"airport"`
		PricePerGallon float64   `json:"pricePerGallon"`
		PricePerLiter  float64   `json:"pricePerLiter"`
		Supplier       string    `json:"supplier"`
		EffectiveDate  time.Time `json:"effectiveDate"`
	} `json:"prices"`
}

// Fetch returns the latest quotes for the configured airports.
func (f *FuelPriceFeed) Fetch(ctx context.Context) ([]planning.FuelPriceQuote, error) {
	if f.baseURL == "" {
		return nil, fmt.Errorf("fuel price feed url is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("airports", strings.Join(f.airports, ","))
		return http.NewRequest(http.MethodGet, f.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, f.httpCfg, f.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("fuel price feed: %w", err)
	}
	defer resp.Body.Close()

	var payload fuelPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fuel price feed: decode: %w", err)
	}

	quotes := make([]planning.FuelPriceQuote, 0, len(payload.Prices))
	for _, p := range payload.Prices {
		if p.Airport == "" || p.PricePerGallon <= 0 {
			continue
		}
		quotes = append(quotes, planning.FuelPriceQuote{
			Airport:        strings.ToUpper(p.Airport),
			PricePerGallon: p.PricePerGallon,
			PricePerLiter:  p.PricePerLiter,
			Supplier:       p.Supplier,
			EffectiveDate:  p.EffectiveDate.UTC(),
		})
	}
	return quotes, nil
}
