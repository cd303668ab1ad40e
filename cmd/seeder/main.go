package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/database"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/meta"
)

// Seeds a local database with a small fake tournament so the statistical
// endpoints have something to render during development.

func loadEnv() (dbName, migrationsDir string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "chinoize-dev.db"
	}
	migrationsDir = os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "./migrations"
	}
	return dbName, migrationsDir
}

var leaders = []struct {
	deckID string
	name   string
	set    string
	number string
}{
	{"OP01-001", "Monkey.D.Luffy", "OP01", "001"},
	{"OP02-013", "Edward.Newgate", "OP02", "013"},
	{"OP05-041", "Sakazuki", "OP05", "041"},
	{"OP06-022", "Vinsmoke Reiju", "OP06", "022"},
}

func main() {
	log.Info("Starting database seeder...")
	dbName, migrationsDir := loadEnv()

	db, teardown, err := database.InitDB(dbName, "", "", migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := meta.New(db)

	tournamentID := "seed-" + uuid.NewString()[:8]
	now := time.Now().UTC()
	tournament := meta.Tournament{
		ID:          tournamentID,
		Name:        "Chinoize Cup Seed Event",
		Date:        now.Format("2006-01-02"),
		PlayerCount: 16,
		Platform:    "online",
		Format:      "OP",
		RoundCount:  4,
		SyncedAt:    now.Format(time.RFC3339),
	}
	if err := store.UpsertTournaments([]meta.Tournament{tournament}); err != nil {
		log.Fatalf("Failed to insert tournament: %s", err)
	}

	var standings []meta.Standing
	var cards []meta.DecklistCard
	for i := 0; i < 16; i++ {
		leader := leaders[rand.Intn(len(leaders))]
		player := fmt.Sprintf("seed-player-%d", i+1)
		placing := i + 1
		wins := 4 - i/4
		losses := 4 - wins

		deckID := leader.deckID
		deckName := leader.name
		standings = append(standings, meta.Standing{
			TournamentID: tournamentID,
			Player:       player,
			DisplayName:  fmt.Sprintf("Seed Player %d", i+1),
			Country:      "FR",
			Placing:      &placing,
			Wins:         wins,
			Losses:       losses,
			DeckID:       &deckID,
			DeckName:     &deckName,
			LeaderName:   &leader.name,
			LeaderSet:    &leader.set,
			LeaderNumber: &leader.number,
		})

		for c := 1; c <= 10; c++ {
			cards = append(cards, meta.DecklistCard{
				TournamentID:   tournamentID,
				StandingPlayer: player,
				CardType:       "character",
				CardName:       fmt.Sprintf("Seed Card %d", c),
				CardSet:        leader.set,
				CardNumber:     fmt.Sprintf("%03d", c+10),
				Count:          4,
				CardID:         fmt.Sprintf("%s-%03d", leader.set, c+10),
			})
		}
	}

	var pairings []meta.Pairing
	for round := 1; round <= 4; round++ {
		for table := 1; table <= 8; table++ {
			p1 := standings[(table*2-2+round)%16].Player
			p2 := standings[(table*2-1+round)%16].Player
			winner := p1
			if rand.Intn(2) == 0 {
				winner = p2
			}
			pairings = append(pairings, meta.Pairing{
				TournamentID: tournamentID,
				Round:        round,
				Phase:        "1",
				Table:        table,
				Player1:      p1,
				Player2:      p2,
				Winner:       winner,
			})
		}
	}

	if err := store.ReplaceTournamentData(tournamentID, standings, cards, pairings); err != nil {
		log.Fatalf("Failed to seed tournament data: %s", err)
	}

	log.Info("Seeding complete", "tournament", tournamentID, "standings", len(standings), "cards", len(cards), "pairings", len(pairings))
}
