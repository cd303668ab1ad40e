package ingest

// Result is the outcome of a single tournament sync.
type Result struct {
	TournamentID string `json:"id"`
	Success      bool   `json:"success"`
	Message      string `json:"message"`
}

// BatchReport summarizes one batch sync run.
type BatchReport struct {
	RunID                 string   `json:"runId"`
	TournamentsDiscovered int      `json:"tournamentsDiscovered"`
	TotalTournaments      int      `json:"totalTournaments"`
	UnsyncedBefore        int      `json:"unsyncedBefore"`
	Results               []Result `json:"tournamentsSynced"`
	Errors                []string `json:"errors"`
}

// Batch size bounds for the sync trigger endpoint.
const (
	DefaultBatchLimit = 5
	MaxBatchLimit     = 50
)
