package domain

import "time"

const degradedThreshold = 500 * time.Millisecond

// LatencyReport describes the gateway heartbeat latency at a point in time.
type LatencyReport struct {
	Heartbeat  time.Duration
	MeasuredAt time.Time
}

// NewLatencyReport creates a LatencyReport for the given heartbeat latency.
func NewLatencyReport(heartbeat time.Duration) *LatencyReport {
	return &LatencyReport{
		Heartbeat:  heartbeat,
		MeasuredAt: time.Now(),
	}
}

// Degraded reports whether the heartbeat latency exceeds the acceptable threshold.
func (r *LatencyReport) Degraded() bool {
	return r.Heartbeat > degradedThreshold
}
