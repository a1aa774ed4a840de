package pstats

import (
	"math"
	"sort"

	"github.com/dropbox/gomean/errors"
	"github.com/dropbox/gomean/math2/mean"
)

type PStats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	// percentile levels desired as integers: 75 = P75, 99 = P99, 999 = P99.9, etc.
	Pctls []int
	// percentiles values (reads nicely, eg, P[99] etc).
	P map[int]float64
}

// Note provided samples are sorted in place.  The mean is computed with a
// compensated sum; NaN samples are rejected.
func NewPStats(samples []float64, pctls []int) (*PStats, error) {
	if len(samples) == 0 {
		return nil, errors.Wrap(mean.ErrEmptyInput, "NewPStats: no samples provided.")
	}
	if len(pctls) < 1 {
		return nil, errors.InvalidArgument("NewPStats: empty pctls provided.")
	}
	if pctls[0] <= 0 {
		return nil, errors.InvalidArgument("NewPStats: invalid pctls provided.")
	}

	acc := mean.NewAccumulator(mean.Options{Precision: mean.Compensated})
	for i, v := range samples {
		if math.IsNaN(v) {
			return nil, errors.InvalidArgumentf("NewPStats: sample %d is NaN.", i)
		}
		acc.Add(v)
	}
	avg, err := acc.Mean()
	if err != nil {
		return nil, errors.Wrap(err, "NewPStats: ")
	}

	pstats := &PStats{
		Count: acc.Count(),
		Min:   acc.Min(),
		Max:   acc.Max(),
		Mean:  avg,
		Pctls: make([]int, len(pctls)),
		P:     make(map[int]float64),
	}
	sort.Float64s(samples)
	copy(pstats.Pctls, pctls)
	sort.Ints(pstats.Pctls)
	n := len(samples)
	prevPctl := 0
	for _, pctl := range pctls {
		if pctl <= prevPctl {
			return nil, errors.InvalidArgument("NewPStats: invalid pctls provided.")
		}
		var den float64
		if pctl < 100 {
			den = 100.0
		} else {
			den = float64(int(math.Pow(10, math.Ceil(math.Log10(float64(pctl))))))
		}
		si := int(math.Floor(float64(n-1) * float64(pctl) / den))
		pstats.P[pctl] = samples[si]
		prevPctl = pctl
	}
	return pstats, nil
}
