package stats

import (
	"sync"

	"github.com/dropbox/gomean/math2/mean"
)

// A metric which aggregates a stream of observed values.
type SummaryStat interface {
	Observe(float64)
}

// MeanSummary is a SummaryStat which keeps a running mean of every observed
// value.  It is safe for concurrent use.
type MeanSummary struct {
	mu  sync.Mutex
	acc *mean.Accumulator
}

// Returns an empty summary summing with the given options.
func NewMeanSummary(opts mean.Options) *MeanSummary {
	return &MeanSummary{acc: mean.NewAccumulator(opts)}
}

// Adds v to the running mean.
func (s *MeanSummary) Observe(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc.Add(v)
}

// Returns the number of observed values and their mean.  err is
// mean.ErrEmptyInput when nothing was observed yet.
func (s *MeanSummary) Snapshot() (count int, avg float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	avg, err = s.acc.Mean()
	return s.acc.Count(), avg, err
}

// Like Snapshot, but also starts a new window.
func (s *MeanSummary) SnapshotAndReset() (count int, avg float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	avg, err = s.acc.Mean()
	count = s.acc.Count()
	s.acc.Reset()
	return count, avg, err
}

// Discards every observed value.
func (s *MeanSummary) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc.Reset()
}
