// Package scheduler provides a small cancellable periodic job, used in
// place of ad hoc polling loops. A Job runs its function at a fixed
// interval until stopped; its lifecycle is tied to the owning component.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

type Job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func NewJob(name string, interval time.Duration, run func(ctx context.Context) error) *Job {
	return &Job{
		name:     name,
		interval: interval,
		run:      run,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the job loop. The function runs once immediately, then on
// every tick. Failures are logged and do not stop the loop; there is no
// automatic retry beyond the next scheduled tick.
func (j *Job) Start(ctx context.Context) {
	go func() {
		defer close(j.done)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-j.stop:
				return
			case <-ticker.C:
				j.runOnce(ctx)
			}
		}
	}()
}

// Stop cancels the job and waits for the loop to exit. Safe to call more
// than once.
func (j *Job) Stop() {
	j.once.Do(func() {
		close(j.stop)
	})
	<-j.done
}

func (j *Job) runOnce(ctx context.Context) {
	if err := j.run(ctx); err != nil {
		log.Printf("job %s: %v", j.name, err)
	}
}
