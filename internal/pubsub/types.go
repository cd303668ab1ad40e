package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// TournamentSyncedEvent is published after each successful tournament sync.
type TournamentSyncedEvent struct {
	TournamentID string `msgpack:"tournamentId"`
	Standings    int    `msgpack:"standings"`
	Cards        int    `msgpack:"cards"`
	Pairings     int    `msgpack:"pairings"`
	SyncedAt     string `msgpack:"syncedAt"`
}
