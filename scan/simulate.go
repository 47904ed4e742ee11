package scan

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	workStep       = 20 * time.Millisecond
	updateInterval = 250 * time.Millisecond
	matchOdds      = 120 // one match per this many files, on average
)

// Simulator drives synthetic scan activity so the dashboard can be
// exercised without a real filesystem scan. Worker goroutines only bump
// atomic counters and queue match notes; all rendering and logging
// happens on the goroutine calling Run.
type Simulator struct {
	workers  int
	duration time.Duration
	metrics  *Metrics
	timer    *Timer
	logger   *zap.Logger
	found    chan string
}

// NewSimulator creates a simulator for the given worker count. A nil
// logger disables match logging.
func NewSimulator(workers int, duration time.Duration, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		workers:  workers,
		duration: duration,
		metrics:  NewMetrics(workers),
		logger:   logger,
		found:    make(chan string, 64),
	}
}

// Metrics returns the counters the workers increment.
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Timer returns the scan timer. Valid after Run has started.
func (s *Simulator) Timer() *Timer {
	return s.timer
}

// Run starts the workers and delivers progress snapshots to onUpdate on
// a fixed cadence until the configured duration elapses or ctx is
// canceled. onUpdate and all logging run on the calling goroutine.
func (s *Simulator) Run(ctx context.Context, onUpdate func(ProgressUpdate) error) error {
	s.timer = StartTimer()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			s.work(worker, stop)
		}(i)
	}
	defer func() {
		close(stop)
		wg.Wait()
		s.timer.Stop()
	}()

	ticker := time.NewTicker(updateInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.duration)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return onUpdate(s.update())
		case path := <-s.found:
			s.logger.Info("suspicious file", zap.String("path", path))
		case <-ticker.C:
			if err := onUpdate(s.update()); err != nil {
				return err
			}
		}
	}
}

func (s *Simulator) update() ProgressUpdate {
	return ProgressUpdate{ElapsedTime: s.timer.Seconds(), Metrics: s.metrics}
}

// work bumps one worker's counters until told to stop.
func (s *Simulator) work(worker int, stop <-chan struct{}) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)))
	ticker := time.NewTicker(workStep)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			files := int64(1 + rng.Intn(4))
			s.metrics.Add(CounterFiles, worker, files)
			s.metrics.Add(CounterBytes, worker, files*int64(512+rng.Intn(1<<16)))
			if rng.Intn(matchOdds) == 0 {
				s.metrics.Add(CounterMatches, worker, 1)
				select {
				case s.found <- fmt.Sprintf("/srv/site/wp-content/uploads/%04x.php", rng.Intn(1<<16)):
				default:
					// Drop the note rather than block a worker.
				}
			}
		}
	}
}
