package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	syncRuns          int
	tournamentsSynced int
	tournamentsFailed int
	syncDurations     []float64
	notifSent         int
	notifFailed       int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		syncDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSyncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncRuns++
}

func (m *Mock) IncTournamentsSynced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsSynced++
}

func (m *Mock) IncTournamentsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFailed++
}

func (m *Mock) ObserveSyncDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncDurations = append(m.syncDurations, duration)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SyncRuns returns the number of times IncSyncRuns was called.
func (m *Mock) SyncRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncRuns
}

// TournamentsSynced returns the number of times IncTournamentsSynced was called.
func (m *Mock) TournamentsSynced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsSynced
}

// TournamentsFailed returns the number of times IncTournamentsFailed was called.
func (m *Mock) TournamentsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFailed
}

// SyncDurations returns the observed durations.
func (m *Mock) SyncDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.syncDurations...)
}
