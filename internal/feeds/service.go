package feeds

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/routewise/flight-advisor/internal/store"
)

// Service orchestrates refreshing every feed into the store. Feeds that fail
// are logged and skipped; previously stored data for a failed feed is never
// cleared, so readers always see the last good refresh.
type Service struct {
	store      *store.MemoryStore
	fuel       *FuelPriceFeed
	winds      *WindsAloftFeed
	turbulence *TurbulenceFeed
}

// NewService creates a refresh service. Any feed may be nil when its URL is
// not configured.
func NewService(st *store.MemoryStore, fuel *FuelPriceFeed, winds *WindsAloftFeed, turbulence *TurbulenceFeed) *Service {
	return &Service{
		store:      st,
		fuel:       fuel,
		winds:      winds,
		turbulence: turbulence,
	}
}

// RefreshAll fetches every configured feed concurrently and stores the
// results. Returns an error only when no feed is configured at all.
func (s *Service) RefreshAll(ctx context.Context) error {
	var wg sync.WaitGroup
	configured := 0

	if s.fuel != nil {
		configured++
		wg.Add(1)
		go func() {
			defer wg.Done()
			quotes, err := s.fuel.Fetch(ctx)
			if err != nil {
				log.Printf("feeds: %s fetch failed: %v", s.fuel.Name(), err)
				return
			}
			for _, q := range quotes {
				s.store.PutFuelPrice(q)
			}
			log.Printf("feeds: %s stored %d quotes", s.fuel.Name(), len(quotes))
		}()
	}

	if s.winds != nil {
		configured++
		wg.Add(1)
		go func() {
			defer wg.Done()
			samples, err := s.winds.Fetch(ctx)
			if err != nil {
				log.Printf("feeds: %s fetch failed: %v", s.winds.Name(), err)
				return
			}
			s.store.ReplaceWindSamples(s.winds.Name(), samples)
			log.Printf("feeds: %s stored %d samples", s.winds.Name(), len(samples))
		}()
	}

	if s.turbulence != nil {
		configured++
		wg.Add(1)
		go func() {
			defer wg.Done()
			zones, err := s.turbulence.Fetch(ctx)
			if err != nil {
				log.Printf("feeds: %s fetch failed: %v", s.turbulence.Name(), err)
				return
			}
			s.store.ReplaceTurbulenceZones(s.turbulence.Name(), zones)
			log.Printf("feeds: %s stored %d zones", s.turbulence.Name(), len(zones))
		}()
	}

	wg.Wait()

	if configured == 0 {
		return fmt.Errorf("no feeds configured")
	}
	return nil
}
