package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/routewise/flight-advisor/internal/feeds"
)

// Scheduler periodically refreshes every data feed into the store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *feeds.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(service *feeds.Service, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
// The first refresh runs immediately so the store is populated before the
// interval elapses.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	job := func() {
		log.Println("scheduler: running feed refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.service.RefreshAll(ctx); err != nil {
			log.Printf("scheduler: refresh failed: %v", err)
			return
		}
		log.Println("scheduler: completed feed refresh job")
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(job)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
