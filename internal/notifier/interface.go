package notifier

import "github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"

// Notifier defines the interface for sending sync run notifications.
// This allows for mock implementations to be used in tests.
type Notifier interface {
	SendSyncSummary(report *ingest.BatchReport, dryRun bool) error
}
