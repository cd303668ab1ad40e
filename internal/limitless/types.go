package limitless

// Tournament is a tournament summary as returned by the list endpoint.
type Tournament struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Game        string `json:"game"`
	Date        string `json:"date"`
	Players     int    `json:"players"`
	Format      string `json:"format"`
	OrganizerID int    `json:"organizerId"`
}

// Record is a player's win/loss/tie line.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Deck identifies the archetype a player registered.
type Deck struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is a single printing reference (used for the leader).
type Card struct {
	Name   string `json:"name"`
	Set    string `json:"set"`
	Number string `json:"number"`
}

// DeckCard is a card entry within a decklist section.
type DeckCard struct {
	Name   string `json:"name"`
	Set    string `json:"set"`
	Number string `json:"number"`
	Count  int    `json:"count"`
}

// Decklist holds the sectioned card lists of a registered deck.
type Decklist struct {
	Leader    *Card      `json:"leader"`
	Character []DeckCard `json:"character"`
	Event     []DeckCard `json:"event"`
	Stage     []DeckCard `json:"stage"`
}

// Standing is one player's final result in a tournament.
// Placing and Drop may be absent in the source data.
type Standing struct {
	Name     string    `json:"name"`
	Player   string    `json:"player"`
	Country  string    `json:"country"`
	Placing  *int      `json:"placing"`
	Record   *Record   `json:"record"`
	Drop     *int      `json:"drop"`
	Deck     *Deck     `json:"deck"`
	Decklist *Decklist `json:"decklist"`
}

// Pairing is one table of one round. An empty Player2 encodes a bye,
// an empty Winner encodes a draw.
type Pairing struct {
	Round   int    `json:"round"`
	Phase   int    `json:"phase"`
	Table   int    `json:"table"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Winner  string `json:"winner"`
}

// ListParams filters the tournament list endpoint.
type ListParams struct {
	Game        string
	OrganizerID string
	Limit       int
}
