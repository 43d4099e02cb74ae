package observability

import (
	"context"

	servertiming "github.com/mitchellh/go-server-timing"
)

// TimingMetric is a running Server-Timing entry; the zero value is a no-op.
type TimingMetric struct {
	metric *servertiming.Metric
}

func (m *TimingMetric) Stop() {
	if m != nil && m.metric != nil {
		m.metric.Stop()
	}
}

// StartTiming starts a Server-Timing metric when the request carries a timing header.
func StartTiming(ctx context.Context, name, description string) *TimingMetric {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return &TimingMetric{}
	}
	m := timing.NewMetric(name)
	if description != "" {
		m = m.WithDesc(description)
	}
	return &TimingMetric{metric: m.Start()}
}
