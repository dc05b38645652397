package application

import (
	"time"

	"github.com/minstrelbot/minstrel/internal/modules/diagnostics/domain"
)

// StatusInteractor handles the ping use case.
type StatusInteractor struct{}

// NewStatusInteractor creates a new StatusInteractor.
func NewStatusInteractor() *StatusInteractor {
	return &StatusInteractor{}
}

// Execute builds a latency report for the given heartbeat measurement.
func (s *StatusInteractor) Execute(heartbeat time.Duration) *domain.LatencyReport {
	return domain.NewLatencyReport(heartbeat)
}
