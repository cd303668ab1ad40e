package decklist

import "github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"

// Service groups decklists into archetype variants for one leader.
type Service struct {
	store meta.MetaStore
}

// Pilot is one (tournament, player) instance of an archetype variant.
type Pilot struct {
	TournamentID   string `json:"tournamentId"`
	TournamentName string `json:"tournamentName"`
	Date           string `json:"date"`
	Player         string `json:"player"`
	DisplayName    string `json:"displayName"`
	Placing        *int   `json:"placing"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	Ties           int    `json:"ties"`
}

// Archetype is one group of identical decklists for a leader.
type Archetype struct {
	Fingerprint string              `json:"fingerprint"`
	PilotCount  int                 `json:"pilotCount"`
	Wins        int                 `json:"wins"`
	Losses      int                 `json:"losses"`
	Ties        int                 `json:"ties"`
	WinRate     float64             `json:"winRate"`
	BestPlacing *int                `json:"bestPlacing"`
	Pilots      []Pilot             `json:"pilots"`
	Cards       []meta.DecklistCard `json:"cards"`
}
