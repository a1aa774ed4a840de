package stats

var (
	NoOpSummary SummaryStat = noopSummary{}
)

type noopSummary struct {
}

func (s noopSummary) Observe(v float64) {
}
