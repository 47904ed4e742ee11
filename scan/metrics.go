// Package scan provides the collaborator surface of the dashboard: the
// per-worker progress counters a scanner produces, the scan timer, the
// finished-scan report, and a synthetic scan driver for the demo binary.
package scan

import "sync/atomic"

// Counter identifies one of the progress counters a scan maintains.
type Counter uint8

const (
	CounterFiles Counter = iota // files processed
	CounterBytes
	CounterMatches
	counterCount
)

// Aggregate selects the sum across all workers when querying a counter.
const Aggregate = -1

// Metrics holds per-worker progress counters. Workers increment their
// own slots concurrently; readers see a consistent-enough snapshot for
// display purposes without locking.
type Metrics struct {
	workerCount int
	counters    [counterCount][]atomic.Int64
}

// NewMetrics creates zeroed counters for the given worker count. The
// worker count is fixed for the lifetime of the metrics.
func NewMetrics(workerCount int) *Metrics {
	m := &Metrics{workerCount: workerCount}
	for c := range m.counters {
		m.counters[c] = make([]atomic.Int64, workerCount)
	}
	return m
}

// WorkerCount returns the fixed number of workers.
func (m *Metrics) WorkerCount() int {
	return m.workerCount
}

// Add increments a worker's counter.
func (m *Metrics) Add(c Counter, worker int, delta int64) {
	m.counters[c][worker].Add(delta)
}

// Value returns a worker's counter, or the sum across all workers when
// worker is Aggregate.
func (m *Metrics) Value(c Counter, worker int) int64 {
	if worker == Aggregate {
		var total int64
		for i := range m.counters[c] {
			total += m.counters[c][i].Load()
		}
		return total
	}
	return m.counters[c][worker].Load()
}

// ProgressUpdate is one progress snapshot delivered to the display.
type ProgressUpdate struct {
	// ElapsedTime is seconds since the scan started, never negative.
	ElapsedTime float64
	Metrics     *Metrics
}
