package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestJobRunsPeriodicallyAndStops(t *testing.T) {
	var runs int32
	job := NewJob("test", 10*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	})

	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	n := atomic.LoadInt32(&runs)
	if n < 2 {
		t.Fatalf("expected at least 2 runs, got %d", n)
	}

	// No more runs after Stop.
	time.Sleep(30 * time.Millisecond)
	if m := atomic.LoadInt32(&runs); m != n {
		t.Fatalf("job kept running after Stop: %d -> %d", n, m)
	}
}

func TestJobStopIsIdempotent(t *testing.T) {
	job := NewJob("test", time.Millisecond, func(ctx context.Context) error { return nil })
	job.Start(context.Background())
	job.Stop()
	job.Stop()
}

func TestJobStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := NewJob("test", time.Millisecond, func(ctx context.Context) error { return nil })
	job.Start(ctx)
	cancel()

	select {
	case <-job.done:
	case <-time.After(time.Second):
		t.Fatal("job did not exit on context cancel")
	}
}
