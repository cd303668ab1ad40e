package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/Nathan-McClard/ChinoizeCupStats/internal/ingest"
	"github.com/Nathan-McClard/ChinoizeCupStats/internal/metrics"
)

// slackClient is the subset of the Slack API the notifier uses.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type slackNotifier struct {
	client    slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewSlack returns a Notifier that posts batch sync summaries to a Slack
// channel.
func NewSlack(token, channelID string, m metrics.Metrics) Notifier {
	return NewSlackWithAPI(slack.New(token), channelID, m)
}

// NewSlackWithAPI injects the Slack API client, for testing.
func NewSlackWithAPI(client slackClient, channelID string, m metrics.Metrics) Notifier {
	return &slackNotifier{
		client:    client,
		channelID: channelID,
		metrics:   m,
	}
}

func (n *slackNotifier) SendSyncSummary(report *ingest.BatchReport, dryRun bool) error {
	text := formatSummary(report)
	if dryRun {
		log.Info("Dry run, skipping Slack notification", "channel", n.channelID, "message", text)
		return nil
	}

	_, _, err := n.client.PostMessageContext(
		context.Background(),
		n.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		n.metrics.IncNotifFailed()
		return fmt.Errorf("posting Slack message: %w", err)
	}
	n.metrics.IncNotifSent()
	return nil
}

func formatSummary(report *ingest.BatchReport) string {
	succeeded := 0
	for _, r := range report.Results {
		if r.Success {
			succeeded++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, ":ocean: *Tournament sync finished* (run %s)\n", report.RunID)
	fmt.Fprintf(&b, "Discovered %d circuit tournaments (%d tracked, %d unsynced before this run)\n",
		report.TournamentsDiscovered, report.TotalTournaments, report.UnsyncedBefore)
	fmt.Fprintf(&b, "Synced %d/%d tournaments", succeeded, len(report.Results))
	if len(report.Errors) > 0 {
		fmt.Fprintf(&b, "\n:warning: %d errors:", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "\n• %s", e)
		}
	}
	return b.String()
}
