package notifier

import (
	"github.com/charmbracelet/log"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
)

type noop struct{}

// NewNoop returns a Notifier that only logs, for deployments without Slack
// configured.
func NewNoop() Notifier {
	return noop{}
}

func (noop) SendSyncSummary(report *ingest.BatchReport, dryRun bool) error {
	log.Debug("Notifications disabled, skipping sync summary", "run", report.RunID, "dryRun", dryRun)
	return nil
}
