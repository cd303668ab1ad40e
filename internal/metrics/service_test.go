package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncSyncRuns()
	svc.IncTournamentsSynced()
	svc.IncTournamentsSynced()
	svc.IncTournamentsFailed()
	svc.IncNotifSent()
	svc.IncNotifFailed()
	svc.SetStartupTime(1.5)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.SyncRuns))
	assert.Equal(t, 2.0, testutil.ToFloat64(svc.TournamentsSynced))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.TournamentsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.NotifSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.NotifFailed))
	assert.Equal(t, 1.5, testutil.ToFloat64(svc.StartupTimeSeconds))
}

func TestServiceObservesSyncDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.ObserveSyncDuration(0.3)
	svc.ObserveSyncDuration(2.0)

	count := testutil.CollectAndCount(svc.SyncDuration)
	assert.Equal(t, 1, count)
}
