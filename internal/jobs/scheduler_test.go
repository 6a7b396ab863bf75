package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	runs  int32
	delay time.Duration
}

func (j *countingJob) Run(ctx context.Context) error {
	atomic.AddInt32(&j.runs, 1)
	return nil
}

func (j *countingJob) GetNextRunTime() time.Time {
	return time.Now().Add(j.delay)
}

func TestSchedulerRunsRegisteredJob(t *testing.T) {
	s := NewJobScheduler()
	job := &countingJob{delay: 10 * time.Millisecond}
	s.Register("counting", job)

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&job.runs) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("job never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerRunNow(t *testing.T) {
	s := NewJobScheduler()
	job := &countingJob{delay: time.Hour}
	s.Register("counting", job)

	if err := s.RunNow("counting"); err != nil {
		t.Fatalf("run now: %v", err)
	}
	if got := atomic.LoadInt32(&job.runs); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}

	// Unknown job names are a no-op, not an error.
	if err := s.RunNow("missing"); err != nil {
		t.Errorf("missing job: %v", err)
	}
}

func TestSchedulerStopPreventsReschedule(t *testing.T) {
	s := NewJobScheduler()
	job := &countingJob{delay: 20 * time.Millisecond}
	s.Register("counting", job)

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()

	before := atomic.LoadInt32(&job.runs)
	time.Sleep(60 * time.Millisecond)
	if after := atomic.LoadInt32(&job.runs); after != before {
		t.Errorf("job ran after Stop: %d -> %d", before, after)
	}
}
