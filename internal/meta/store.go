package meta

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// insertBatchSize bounds statement size for chunked inserts. Each chunk is
// conflict-tolerant, so resending a chunk after a retry is safe.
const insertBatchSize = 100

// New creates a new MetaStore.
func New(db *sql.DB) MetaStore {
	return &store{
		db: db,
	}
}

// UpsertTournaments inserts discovered tournaments, never overwriting the
// mutable fields of an existing row (those are owned by the detail sync).
func (s *store) UpsertTournaments(tournaments []Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(tournaments) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	for start := 0; start < len(tournaments); start += insertBatchSize {
		end := min(start+insertBatchSize, len(tournaments))
		batch := tournaments[start:end]

		var (
			values []string
			args   []any
		)
		for _, t := range batch {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args, t.ID, t.Name, t.Date, t.PlayerCount, t.Platform, t.Format, t.RoundCount, t.SyncedAt)
		}

		query := `
			INSERT INTO tournaments (id, name, date, player_count, platform, format, round_count, synced_at)
			VALUES ` + strings.Join(values, ", ") + `
			ON CONFLICT(id) DO NOTHING;
		`
		if _, err := tx.Exec(query, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert tournaments: %w", err)
		}
	}

	return tx.Commit()
}

// UpdateTournamentSync records the detail-sync results on the tournament row.
func (s *store) UpdateTournamentSync(id string, roundCount, playerCount int, syncedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE tournaments SET round_count = ?, player_count = ?, synced_at = ? WHERE id = ?",
		roundCount, playerCount, syncedAt, id,
	)
	return err
}

// ReplaceTournamentData deletes all child rows for a tournament and reinserts
// the freshly computed ones as one transaction. The store lock keeps two syncs
// of the same tournament from interleaving their deletes and inserts.
func (s *store) ReplaceTournamentData(id string, standings []Standing, cards []DecklistCard, pairings []Pairing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	// Children first, then standings, then pairings.
	for _, table := range []string{"decklist_cards", "standings", "pairings"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE tournament_id = ?", id); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s for tournament %s: %w", table, id, err)
		}
	}

	if err := insertStandings(tx, standings); err != nil {
		tx.Rollback()
		return err
	}
	if err := insertDecklistCards(tx, cards); err != nil {
		tx.Rollback()
		return err
	}
	if err := insertPairings(tx, pairings); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func insertStandings(tx *sql.Tx, rows []Standing) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		var (
			values []string
			args   []any
		)
		for _, r := range rows[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				r.TournamentID, r.Player, r.DisplayName, r.Country,
				r.Placing, r.Wins, r.Losses, r.Ties, r.DropRound,
				r.DeckID, r.DeckName, r.LeaderName, r.LeaderSet, r.LeaderNumber,
			)
		}

		query := `
			INSERT INTO standings (tournament_id, player, display_name, country, placing, wins, losses, ties, drop_round, deck_id, deck_name, leader_name, leader_set, leader_number)
			VALUES ` + strings.Join(values, ", ") + `
			ON CONFLICT DO NOTHING;
		`
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert standings: %w", err)
		}
	}
	return nil
}

func insertDecklistCards(tx *sql.Tx, rows []DecklistCard) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		var (
			values []string
			args   []any
		)
		for _, r := range rows[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				r.TournamentID, r.StandingPlayer, r.CardType, r.CardName,
				r.CardSet, r.CardNumber, r.Count, r.CardID,
			)
		}

		query := `
			INSERT INTO decklist_cards (tournament_id, standing_player, card_type, card_name, card_set, card_number, count, card_id)
			VALUES ` + strings.Join(values, ", ") + `
			ON CONFLICT DO NOTHING;
		`
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert decklist cards: %w", err)
		}
	}
	return nil
}

func insertPairings(tx *sql.Tx, rows []Pairing) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		var (
			values []string
			args   []any
		)
		for _, r := range rows[start:end] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, r.TournamentID, r.Round, r.Phase, r.Table, r.Player1, r.Player2, r.Winner)
		}

		query := `
			INSERT INTO pairings (tournament_id, round, phase, tbl, player1, player2, winner)
			VALUES ` + strings.Join(values, ", ") + `
			ON CONFLICT DO NOTHING;
		`
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert pairings: %w", err)
		}
	}
	return nil
}

// StartSyncLog appends a running audit row and returns its id.
func (s *store) StartSyncLog(tournamentID, syncType, startedAt string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO sync_log (tournament_id, sync_type, status, started_at) VALUES (?, ?, ?, ?)",
		tournamentID, syncType, SyncStatusRunning, startedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sync log: %w", err)
	}
	return res.LastInsertId()
}

// CompleteSyncLog records the outcome of a sync attempt.
func (s *store) CompleteSyncLog(id int64, status, message, completedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE sync_log SET status = ?, message = ?, completed_at = ? WHERE id = ?",
		status, message, completedAt, id,
	)
	return err
}

func (s *store) ListTournaments() ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, date, player_count, platform, format, round_count, synced_at
		FROM tournaments ORDER BY date DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		var t Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Date, &t.PlayerCount, &t.Platform, &t.Format, &t.RoundCount, &t.SyncedAt); err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (s *store) GetTournament(id string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Tournament
	err := s.db.QueryRow(`
		SELECT id, name, date, player_count, platform, format, round_count, synced_at
		FROM tournaments WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Date, &t.PlayerCount, &t.Platform, &t.Format, &t.RoundCount, &t.SyncedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// StandingCounts returns the number of standings rows per tournament id.
// Tournaments without standings are absent from the map.
func (s *store) StandingCounts() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT tournament_id, COUNT(*) FROM standings GROUP BY tournament_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// DashboardStats returns the site-wide aggregate counts shown on the
// landing page.
func (s *store) DashboardStats() (DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats DashboardStats
	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM tournaments),
			(SELECT COUNT(*) FROM standings),
			(SELECT COUNT(DISTINCT player) FROM standings),
			(SELECT COUNT(DISTINCT deck_id) FROM standings WHERE deck_id IS NOT NULL)
	`).Scan(&stats.TournamentCount, &stats.StandingCount, &stats.UniquePlayers, &stats.UniqueLeaders)
	return stats, err
}

// RecentWinners returns the most recent tournaments joined with their
// first-place standing. Tournaments without a placing-1 row drop out.
func (s *store) RecentWinners(limit int) ([]RecentWinner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.date, t.player_count, s.display_name, s.deck_id, s.deck_name
		FROM tournaments t
		INNER JOIN standings s ON s.tournament_id = t.id AND s.placing = 1
		ORDER BY t.date DESC, t.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var winners []RecentWinner
	for rows.Next() {
		var (
			w                RecentWinner
			deckID, deckName sql.NullString
		)
		if err := rows.Scan(&w.TournamentID, &w.TournamentName, &w.Date, &w.PlayerCount, &w.Winner, &deckID, &deckName); err != nil {
			return nil, err
		}
		w.WinnerDeckID = nullableString(deckID)
		w.WinnerDeckName = nullableString(deckName)
		winners = append(winners, w)
	}
	return winners, rows.Err()
}

const standingColumns = "tournament_id, player, display_name, country, placing, wins, losses, ties, drop_round, deck_id, deck_name, leader_name, leader_set, leader_number"

func scanStanding(scanner interface{ Scan(...any) error }, extra ...any) (Standing, error) {
	var (
		st            Standing
		placing, drop sql.NullInt64
		deckID        sql.NullString
		deckName      sql.NullString
		leaderName    sql.NullString
		leaderSet     sql.NullString
		leaderNumber  sql.NullString
	)
	dest := []any{
		&st.TournamentID, &st.Player, &st.DisplayName, &st.Country,
		&placing, &st.Wins, &st.Losses, &st.Ties, &drop,
		&deckID, &deckName, &leaderName, &leaderSet, &leaderNumber,
	}
	dest = append(dest, extra...)
	if err := scanner.Scan(dest...); err != nil {
		return Standing{}, err
	}
	st.Placing = nullableInt(placing)
	st.DropRound = nullableInt(drop)
	st.DeckID = nullableString(deckID)
	st.DeckName = nullableString(deckName)
	st.LeaderName = nullableString(leaderName)
	st.LeaderSet = nullableString(leaderSet)
	st.LeaderNumber = nullableString(leaderNumber)
	return st, nil
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullableString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

// inFilter renders "AND <column> IN (?, ...)" for a non-empty id set.
func inFilter(column string, ids []string, args *[]any) string {
	if len(ids) == 0 {
		return ""
	}
	for _, id := range ids {
		*args = append(*args, id)
	}
	return " AND " + column + " IN (?" + strings.Repeat(", ?", len(ids)-1) + ")"
}

func (s *store) GetStandings(tournamentIDs []string) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var args []any
	query := "SELECT " + standingColumns + " FROM standings WHERE 1=1" +
		inFilter("tournament_id", tournamentIDs, &args)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		st, err := scanStanding(rows)
		if err != nil {
			log.Error("Failed to scan standing row", "error", err)
			continue
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}

func (s *store) GetTournamentStandings(tournamentID string) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT "+standingColumns+" FROM standings WHERE tournament_id = ? ORDER BY placing",
		tournamentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		st, err := scanStanding(rows)
		if err != nil {
			return nil, err
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}

const standingEventColumns = "s.tournament_id, s.player, s.display_name, s.country, s.placing, s.wins, s.losses, s.ties, s.drop_round, s.deck_id, s.deck_name, s.leader_name, s.leader_set, s.leader_number, t.name, t.date, t.player_count"

func (s *store) queryStandingsWithEvent(query string, args ...any) ([]StandingWithEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []StandingWithEvent
	for rows.Next() {
		var entry StandingWithEvent
		st, err := scanStanding(rows, &entry.TournamentName, &entry.TournamentDate, &entry.TournamentPlayerCount)
		if err != nil {
			return nil, err
		}
		entry.Standing = st
		results = append(results, entry)
	}
	return results, rows.Err()
}

func (s *store) GetStandingsWithEvent(tournamentIDs []string) ([]StandingWithEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var args []any
	query := "SELECT " + standingEventColumns + `
		FROM standings s
		INNER JOIN tournaments t ON t.id = s.tournament_id
		WHERE 1=1` +
		inFilter("s.tournament_id", tournamentIDs, &args) +
		" ORDER BY t.date"

	return s.queryStandingsWithEvent(query, args...)
}

func (s *store) GetLeaderEntries(deckID string, tournamentIDs []string) ([]StandingWithEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	args := []any{deckID}
	query := "SELECT " + standingEventColumns + `
		FROM standings s
		INNER JOIN tournaments t ON t.id = s.tournament_id
		WHERE s.deck_id = ?` +
		inFilter("s.tournament_id", tournamentIDs, &args) +
		" ORDER BY t.date DESC"

	return s.queryStandingsWithEvent(query, args...)
}

func (s *store) GetPlayerEntries(player string) ([]StandingWithEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + standingEventColumns + `
		FROM standings s
		INNER JOIN tournaments t ON t.id = s.tournament_id
		WHERE s.player = ?
		ORDER BY t.date DESC`

	return s.queryStandingsWithEvent(query, player)
}

func (s *store) GetDecklistForPlayer(tournamentID, player string) ([]DecklistCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT tournament_id, standing_player, card_type, card_name, card_set, card_number, count, COALESCE(card_id, '')
		FROM decklist_cards
		WHERE tournament_id = ? AND standing_player = ?
		ORDER BY card_type, card_name
	`, tournamentID, player)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDecklistCards(rows)
}

// GetArchetypeCards returns every non-leader, non-DON card row for standings
// registered to the given leader, joined against its standing.
func (s *store) GetArchetypeCards(deckID string, tournamentIDs []string) ([]DecklistCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	args := []any{deckID}
	query := `
		SELECT dc.tournament_id, dc.standing_player, dc.card_type, dc.card_name, dc.card_set, dc.card_number, dc.count, COALESCE(dc.card_id, '')
		FROM decklist_cards dc
		INNER JOIN standings s
			ON s.tournament_id = dc.tournament_id
			AND s.player = dc.standing_player
		WHERE s.deck_id = ?
			AND dc.card_type NOT IN ('Leader', 'DON!!')` +
		inFilter("dc.tournament_id", tournamentIDs, &args)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDecklistCards(rows)
}

func collectDecklistCards(rows *sql.Rows) ([]DecklistCard, error) {
	var cards []DecklistCard
	for rows.Next() {
		var c DecklistCard
		if err := rows.Scan(&c.TournamentID, &c.StandingPlayer, &c.CardType, &c.CardName, &c.CardSet, &c.CardNumber, &c.Count, &c.CardID); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *store) MostPlayedCards(limit int, tournamentIDs []string) ([]CardUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var args []any
	query := `
		SELECT
			card_name,
			card_set,
			card_number,
			MIN(card_type),
			COALESCE(MIN(card_id), ''),
			COUNT(DISTINCT standing_player || '-' || tournament_id),
			AVG(count),
			SUM(count)
		FROM decklist_cards
		WHERE 1=1` +
		inFilter("tournament_id", tournamentIDs, &args) + `
		GROUP BY card_name, card_set, card_number
		ORDER BY COUNT(DISTINCT standing_player || '-' || tournament_id) DESC
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCardUsage(rows)
}

func (s *store) CardsByLeader(deckID string) ([]CardUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT
			dc.card_name,
			dc.card_set,
			dc.card_number,
			MIN(dc.card_type),
			COALESCE(MIN(dc.card_id), ''),
			COUNT(DISTINCT dc.standing_player || '-' || dc.tournament_id),
			AVG(dc.count),
			SUM(dc.count)
		FROM decklist_cards dc
		INNER JOIN standings s
			ON s.tournament_id = dc.tournament_id
			AND s.player = dc.standing_player
		WHERE s.deck_id = ?
		GROUP BY dc.card_name, dc.card_set, dc.card_number
		ORDER BY COUNT(DISTINCT dc.standing_player || '-' || dc.tournament_id) DESC
	`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCardUsage(rows)
}

func collectCardUsage(rows *sql.Rows) ([]CardUsage, error) {
	var cards []CardUsage
	for rows.Next() {
		var c CardUsage
		if err := rows.Scan(&c.CardName, &c.CardSet, &c.CardNumber, &c.CardType, &c.CardID, &c.TotalDecks, &c.AvgCopies, &c.TotalCopies); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// matchupSelect joins each standing with every pairing its player sat at and
// with the opponent's standing to read the opposing deck. Byes drop out of
// the join (no standing has an empty player key). An unset winner is a draw.
const matchupSelect = `
	SELECT
		s.deck_id,
		opp.deck_id,
		SUM(CASE WHEN p.winner = s.player THEN 1 ELSE 0 END),
		SUM(CASE WHEN p.winner IS NOT NULL AND p.winner != '' AND p.winner != s.player THEN 1 ELSE 0 END),
		SUM(CASE WHEN p.winner IS NULL OR p.winner = '' THEN 1 ELSE 0 END)
	FROM standings s
	INNER JOIN pairings p
		ON p.tournament_id = s.tournament_id
		AND (p.player1 = s.player OR p.player2 = s.player)
	INNER JOIN standings opp
		ON opp.tournament_id = s.tournament_id
		AND opp.player = CASE WHEN p.player1 = s.player THEN p.player2 ELSE p.player1 END
		AND opp.deck_id IS NOT NULL
`

func (s *store) MatchupCounts(deckID string) ([]MatchupRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := matchupSelect + `
	WHERE s.deck_id = ?
	GROUP BY s.deck_id, opp.deck_id`

	rows, err := s.db.Query(query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMatchupRows(rows)
}

func (s *store) MatchupMatrixCounts(deckIDs []string) ([]MatchupRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(deckIDs) == 0 {
		return nil, nil
	}

	placeholders := "?" + strings.Repeat(", ?", len(deckIDs)-1)
	query := matchupSelect + `
	WHERE s.deck_id IN (` + placeholders + `)
		AND opp.deck_id IN (` + placeholders + `)
	GROUP BY s.deck_id, opp.deck_id`

	args := make([]any, 0, len(deckIDs)*2)
	for _, id := range deckIDs {
		args = append(args, id)
	}
	for _, id := range deckIDs {
		args = append(args, id)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMatchupRows(rows)
}

func collectMatchupRows(rows *sql.Rows) ([]MatchupRow, error) {
	var results []MatchupRow
	for rows.Next() {
		var r MatchupRow
		if err := rows.Scan(&r.DeckID, &r.OpponentDeckID, &r.Wins, &r.Losses, &r.Ties); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// SetAppearances returns every (card set, tournament, date) combination for
// sets with competitive naming prefixes. Pattern filtering beyond the prefix
// happens in the format package.
func (s *store) SetAppearances() ([]SetAppearance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT DISTINCT dc.card_set, dc.tournament_id, t.date
		FROM decklist_cards dc
		INNER JOIN tournaments t ON t.id = dc.tournament_id
		WHERE dc.card_set LIKE 'OP%' OR dc.card_set LIKE 'EB%'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appearances []SetAppearance
	for rows.Next() {
		var a SetAppearance
		if err := rows.Scan(&a.CardSet, &a.TournamentID, &a.Date); err != nil {
			return nil, err
		}
		appearances = append(appearances, a)
	}
	return appearances, rows.Err()
}

// MaxSyncedAt is the content watermark used to invalidate format caches.
func (s *store) MaxSyncedAt() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var watermark string
	err := s.db.QueryRow("SELECT COALESCE(MAX(synced_at), '') FROM tournaments").Scan(&watermark)
	return watermark, err
}
