package limitless

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the LimitlessClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetTournamentsFunc func(params *ListParams) ([]Tournament, error)
	GetStandingsFunc   func(tournamentID string) ([]Standing, error)
	GetPairingsFunc    func(tournamentID string) ([]Pairing, error)

	// Call records
	GetTournamentsCalls []*ListParams
	GetStandingsCalls   []string
	GetPairingsCalls    []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTournamentsCalls = nil
	m.GetStandingsCalls = nil
	m.GetPairingsCalls = nil
}

func (m *MockClient) GetTournaments(_ context.Context, params *ListParams) ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTournamentsCalls = append(m.GetTournamentsCalls, params)
	if m.GetTournamentsFunc != nil {
		return m.GetTournamentsFunc(params)
	}
	return []Tournament{}, nil
}

func (m *MockClient) GetStandings(_ context.Context, tournamentID string) ([]Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetStandingsCalls = append(m.GetStandingsCalls, tournamentID)
	if m.GetStandingsFunc != nil {
		return m.GetStandingsFunc(tournamentID)
	}
	return []Standing{}, nil
}

func (m *MockClient) GetPairings(_ context.Context, tournamentID string) ([]Pairing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPairingsCalls = append(m.GetPairingsCalls, tournamentID)
	if m.GetPairingsFunc != nil {
		return m.GetPairingsFunc(tournamentID)
	}
	return []Pairing{}, nil
}
