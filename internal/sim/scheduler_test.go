package sim

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler()
	if err := s.Add("not a cron spec", "bad", func() error { return nil }); err == nil {
		t.Error("Add accepted a malformed cron spec")
	}
}

func TestSchedulerRunsJob(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	if err := s.Add("* * * * * *", "tick", func() error {
		runs.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	s.Start()
	defer func() { <-s.Stop().Done() }()

	deadline := time.After(3 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(50 * time.Millisecond):
		}
	}
}
