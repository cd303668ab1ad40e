package stats

import "github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"

// Service computes derived statistics over the circuit store. All results
// are recomputed per call; nothing here is cached or persisted.
type Service struct {
	store meta.MetaStore
}

// LeaderStats is the full metric line for one leader archetype.
type LeaderStats struct {
	DeckID            string  `json:"deckId"`
	DeckName          string  `json:"deckName"`
	LeaderName        string  `json:"leaderName"`
	LeaderSet         string  `json:"leaderSet"`
	LeaderNumber      string  `json:"leaderNumber"`
	TotalEntries      int     `json:"totalEntries"`
	TotalWins         int     `json:"totalWins"`
	TotalLosses       int     `json:"totalLosses"`
	TotalTies         int     `json:"totalTies"`
	WinRate           float64 `json:"winRate"`
	AvgPlacing        float64 `json:"avgPlacing"`
	Top4Count         int     `json:"top4Count"`
	Top4Rate          float64 `json:"top4Rate"`
	WeightedTop4Score float64 `json:"weightedTop4Score"`
	TournamentWins    int     `json:"tournamentWins"`
	PlayRate          float64 `json:"playRate"`
	ConversionRate    float64 `json:"conversionRate"`
	CompositeScore    float64 `json:"compositeScore"`
	Tier              string  `json:"tier"`
}

// Matchup is one leader's aggregated record against a single opponent.
type Matchup struct {
	OpponentDeckID string  `json:"opponentDeckId"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Ties           int     `json:"ties"`
	Total          int     `json:"total"`
	WinRate        float64 `json:"winRate"`
}

// MatrixCell is one directed cell of the full matchup grid.
type MatrixCell struct {
	DeckID         string  `json:"deckId"`
	OpponentDeckID string  `json:"opponentDeckId"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Ties           int     `json:"ties"`
	WinRate        float64 `json:"winRate"`
}

// PlayerStanding is one row of the player leaderboard.
type PlayerStanding struct {
	Player           string  `json:"player"`
	DisplayName      string  `json:"displayName"`
	Country          string  `json:"country"`
	Points           int     `json:"points"`
	Entries          int     `json:"entries"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Ties             int     `json:"ties"`
	WinRate          float64 `json:"winRate"`
	Top4s            int     `json:"top4s"`
	TournamentWins   int     `json:"tournamentWins"`
	BestPlacing      *int    `json:"bestPlacing"`
	MostPlayedLeader string  `json:"mostPlayedLeader"`
}

// MetaShareEntry is one leader's share of total entries in the filtered set.
type MetaShareEntry struct {
	DeckID     string  `json:"deckId"`
	LeaderName string  `json:"leaderName"`
	Entries    int     `json:"entries"`
	Share      float64 `json:"share"`
}

// TrendPoint is one tournament's contribution to a per-leader time series.
type TrendPoint struct {
	TournamentID   string  `json:"tournamentId"`
	TournamentName string  `json:"tournamentName"`
	Date           string  `json:"date"`
	Entries        int     `json:"entries"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Ties           int     `json:"ties"`
	WinRate        float64 `json:"winRate"`
}

// LeaderDetail bundles a leader's stat line with its matchups and trend.
type LeaderDetail struct {
	Stats    *LeaderStats `json:"stats"`
	Matchups []Matchup    `json:"matchups"`
	Trend    []TrendPoint `json:"trend"`
}
