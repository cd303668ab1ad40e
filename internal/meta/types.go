package meta

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the circuit data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Tournament is one synced event. ID is assigned by the source and is the
// idempotency key across re-syncs.
type Tournament struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	PlayerCount int    `json:"playerCount"`
	Platform    string `json:"platform"`
	Format      string `json:"format"`
	RoundCount  int    `json:"roundCount"`
	SyncedAt    string `json:"syncedAt"`
}

// Standing is one player's final record for one tournament.
// Placing is nil when the source omitted it and no value was computed;
// DropRound is set when the player withdrew mid-event.
type Standing struct {
	TournamentID string  `json:"tournamentId"`
	Player       string  `json:"player"`
	DisplayName  string  `json:"displayName"`
	Country      string  `json:"country"`
	Placing      *int    `json:"placing"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Ties         int     `json:"ties"`
	DropRound    *int    `json:"dropRound"`
	DeckID       *string `json:"deckId"`
	DeckName     *string `json:"deckName"`
	LeaderName   *string `json:"leaderName"`
	LeaderSet    *string `json:"leaderSet"`
	LeaderNumber *string `json:"leaderNumber"`
}

// StandingWithEvent is a standing joined with its tournament's metadata.
type StandingWithEvent struct {
	Standing
	TournamentName        string `json:"tournamentName"`
	TournamentDate        string `json:"tournamentDate"`
	TournamentPlayerCount int    `json:"tournamentPlayerCount"`
}

// DecklistCard is one card entry of one player's decklist.
type DecklistCard struct {
	TournamentID   string `json:"tournamentId"`
	StandingPlayer string `json:"standingPlayer"`
	CardType       string `json:"cardType"`
	CardName       string `json:"cardName"`
	CardSet        string `json:"cardSet"`
	CardNumber     string `json:"cardNumber"`
	Count          int    `json:"count"`
	CardID         string `json:"cardId"`
}

// Pairing is one table of one round. An empty Player2 encodes a bye,
// an empty Winner encodes a draw.
type Pairing struct {
	TournamentID string `json:"tournamentId"`
	Round        int    `json:"round"`
	Phase        string `json:"phase"`
	Table        int    `json:"table"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	Winner       string `json:"winner"`
}

// SyncLogEntry is one append-only audit row per sync attempt.
type SyncLogEntry struct {
	ID           int64   `json:"id"`
	TournamentID string  `json:"tournamentId"`
	SyncType     string  `json:"syncType"`
	Status       string  `json:"status"`
	Message      *string `json:"message"`
	StartedAt    string  `json:"startedAt"`
	CompletedAt  *string `json:"completedAt"`
}

// Sync log statuses.
const (
	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
)

// MatchupRow is an aggregated head-to-head count between two archetypes.
type MatchupRow struct {
	DeckID         string `json:"deckId"`
	OpponentDeckID string `json:"opponentDeckId"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Ties           int    `json:"ties"`
}

// SetAppearance records that a card set showed up in some decklist at a
// tournament held on the given date.
type SetAppearance struct {
	CardSet      string `json:"cardSet"`
	TournamentID string `json:"tournamentId"`
	Date         string `json:"date"`
}

// DashboardStats holds the site-wide aggregate counts.
type DashboardStats struct {
	TournamentCount int `json:"tournamentCount"`
	StandingCount   int `json:"standingCount"`
	UniquePlayers   int `json:"uniquePlayers"`
	UniqueLeaders   int `json:"uniqueLeaders"`
}

// RecentWinner pairs a tournament with its first-place standing.
type RecentWinner struct {
	TournamentID   string  `json:"tournamentId"`
	TournamentName string  `json:"tournamentName"`
	Date           string  `json:"date"`
	PlayerCount    int     `json:"playerCount"`
	Winner         string  `json:"winner"`
	WinnerDeckID   *string `json:"winnerDeckId"`
	WinnerDeckName *string `json:"winnerDeckName"`
}

// CardUsage is an aggregated play-count row for a single card.
type CardUsage struct {
	CardName    string  `json:"cardName"`
	CardSet     string  `json:"cardSet"`
	CardNumber  string  `json:"cardNumber"`
	CardType    string  `json:"cardType"`
	CardID      string  `json:"cardId"`
	TotalDecks  int     `json:"totalDecks"`
	AvgCopies   float64 `json:"avgCopies"`
	TotalCopies int     `json:"totalCopies"`
}
