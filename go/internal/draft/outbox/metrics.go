package outbox

import "sync/atomic"

// Metrics counts relay outcomes
type Metrics struct {
	published atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
	retries   atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics
type MetricsSnapshot struct {
	Published int64 `json:"published"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
	Retries   int64 `json:"retries"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Published: m.published.Load(),
		Failed:    m.failed.Load(),
		Dropped:   m.dropped.Load(),
		Retries:   m.retries.Load(),
	}
}
