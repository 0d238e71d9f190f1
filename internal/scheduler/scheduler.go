package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-lookup/internal/store"
)

// Scheduler periodically purges expired preference cookies.
type Scheduler struct {
	scheduler *gocron.Scheduler
	kv        store.KV
	interval  time.Duration
}

// New creates a new Scheduler.
func New(kv store.KV, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		kv:        kv,
		interval:  interval,
	}
}

// Start schedules the sweep (once immediately, then every interval) and starts
// the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	_, err := s.scheduler.Every(interval).Do(s.Sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Sweep removes expired entries once.
func (s *Scheduler) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.kv.PurgeExpired(ctx)
	if err != nil {
		log.Printf("ERROR: scheduler: purging expired preferences: %v", err)
		return
	}
	if n > 0 {
		log.Printf("INFO: scheduler: purged %d expired preferences", n)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
