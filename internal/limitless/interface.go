package limitless

import "context"

// LimitlessClient defines the interface for interacting with the Limitless tournament API.
// This allows for mock implementations to be used in tests.
type LimitlessClient interface {
	GetTournaments(ctx context.Context, params *ListParams) ([]Tournament, error)
	GetStandings(ctx context.Context, tournamentID string) ([]Standing, error)
	GetPairings(ctx context.Context, tournamentID string) ([]Pairing, error)
}
