package sim

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/guarzo/retailsim/internal/obs"
)

// Scheduler runs the periodic market jobs: repricing passes, snapshot
// captures, history exports. Jobs that fail are logged and retried on the
// next tick.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithSeconds())}
}

// Add registers a named job on a cron spec (with a seconds field).
func (s *Scheduler) Add(spec, name string, job func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(); err != nil {
			obs.Logger.Warn("scheduled job failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	return nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once running
// jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
