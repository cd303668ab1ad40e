package meta

// MetaStore defines the interface for interacting with the circuit's data.
type MetaStore interface {
	// Ingestion side
	UpsertTournaments(tournaments []Tournament) error
	UpdateTournamentSync(id string, roundCount, playerCount int, syncedAt string) error
	ReplaceTournamentData(id string, standings []Standing, cards []DecklistCard, pairings []Pairing) error
	StartSyncLog(tournamentID, syncType, startedAt string) (int64, error)
	CompleteSyncLog(id int64, status, message, completedAt string) error

	// Tournament queries
	ListTournaments() ([]Tournament, error)
	GetTournament(id string) (*Tournament, error)
	StandingCounts() (map[string]int, error)
	GetTournamentStandings(tournamentID string) ([]Standing, error)
	DashboardStats() (DashboardStats, error)
	RecentWinners(limit int) ([]RecentWinner, error)

	// Standing queries for the statistics engine. A nil/empty tournamentIDs
	// slice means no filter.
	GetStandings(tournamentIDs []string) ([]Standing, error)
	GetStandingsWithEvent(tournamentIDs []string) ([]StandingWithEvent, error)
	GetLeaderEntries(deckID string, tournamentIDs []string) ([]StandingWithEvent, error)
	GetPlayerEntries(player string) ([]StandingWithEvent, error)

	// Decklist queries
	GetDecklistForPlayer(tournamentID, player string) ([]DecklistCard, error)
	GetArchetypeCards(deckID string, tournamentIDs []string) ([]DecklistCard, error)
	MostPlayedCards(limit int, tournamentIDs []string) ([]CardUsage, error)
	CardsByLeader(deckID string) ([]CardUsage, error)

	// Matchup queries
	MatchupCounts(deckID string) ([]MatchupRow, error)
	MatchupMatrixCounts(deckIDs []string) ([]MatchupRow, error)

	// Format resolution inputs
	SetAppearances() ([]SetAppearance, error)
	MaxSyncedAt() (string, error)
}
