package stats

type compositeSummary struct {
	metrics []SummaryStat
}

// Returns a SummaryStat which forwards every observation to all of metrics.
func NewCompositeSummary(metrics ...SummaryStat) SummaryStat {
	return compositeSummary{metrics}
}

func (s compositeSummary) Observe(value float64) {
	for _, metric := range s.metrics {
		metric.Observe(value)
	}
}
