package notifier

import (
	"sync"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
)

// Mock is a mock implementation of the Notifier interface for testing.
type Mock struct {
	mu      sync.Mutex
	Reports []*ingest.BatchReport
	DryRuns []bool
	Err     error
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendSyncSummary(report *ingest.BatchReport, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, report)
	m.DryRuns = append(m.DryRuns, dryRun)
	return m.Err
}

// Sent returns the number of summaries delivered to the mock.
func (m *Mock) Sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reports)
}
