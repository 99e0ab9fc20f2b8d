package jobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the nightly catalog jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler. Cron specs include a seconds field.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithSeconds())}
}

// Add registers a named job with a cron spec.
func (s *Scheduler) Add(name, spec string, job func()) error {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	log.Printf("   ✅ Scheduled %s: %s", name, spec)
	return nil
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	log.Println("⏰ Starting job scheduler...")
	s.cron.Start()
}

// Stop stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	log.Println("⏰ Stopping job scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
}
