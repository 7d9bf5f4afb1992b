package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSyncService counts invocations and plays back a scripted freshness.
type fakeSyncService struct {
	fresh     bool
	freshErr  error
	syncCalls atomic.Int32
}

func (f *fakeSyncService) Synchronize(ctx context.Context) domain.SyncResult {
	f.syncCalls.Add(1)
	return domain.SyncResult{Success: true, RatesWritten: 12, Timestamp: time.Now().UTC()}
}

func (f *fakeSyncService) IsFresh(ctx context.Context, now time.Time) (bool, error) {
	return f.fresh, f.freshErr
}

func (f *fakeSyncService) FreshnessTTL() time.Duration {
	return 8 * time.Hour
}

func (f *fakeSyncService) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	return nil, nil
}

func TestRunInitialCheck_StaleTriggersSync(t *testing.T) {
	svc := &fakeSyncService{fresh: false}
	s := New(svc, []string{"00:00"}, time.UTC, slog.Default())

	s.RunInitialCheck(context.Background())
	assert.Equal(t, int32(1), svc.syncCalls.Load())
}

func TestRunInitialCheck_FreshSkipsSync(t *testing.T) {
	svc := &fakeSyncService{fresh: true}
	s := New(svc, []string{"00:00"}, time.UTC, slog.Default())

	s.RunInitialCheck(context.Background())
	assert.Equal(t, int32(0), svc.syncCalls.Load())
}

func TestRunInitialCheck_FreshnessErrorForcesSync(t *testing.T) {
	svc := &fakeSyncService{fresh: false, freshErr: assert.AnError}
	s := New(svc, []string{"00:00"}, time.UTC, slog.Default())

	s.RunInitialCheck(context.Background())
	assert.Equal(t, int32(1), svc.syncCalls.Load())
}

func TestStartStopLifecycle(t *testing.T) {
	svc := &fakeSyncService{}
	s := New(svc, []string{"00:00", "08:00", "16:00"}, time.UTC, slog.Default())

	require.NoError(t, s.Start())
	// Second Start is a warned no-op, not an error and not a second cron.
	require.NoError(t, s.Start())

	s.Stop()
	// Second Stop is a warned no-op.
	s.Stop()
}

func TestStart_AllTimesInvalid(t *testing.T) {
	svc := &fakeSyncService{}
	s := New(svc, []string{"nonsense", "25:99"}, time.UTC, slog.Default())

	assert.Error(t, s.Start())
}

func TestCronSpecFor(t *testing.T) {
	spec, err := cronSpecFor("08:00")
	require.NoError(t, err)
	assert.Equal(t, "0 8 * * *", spec)

	spec, err = cronSpecFor("16:30")
	require.NoError(t, err)
	assert.Equal(t, "30 16 * * *", spec)

	_, err = cronSpecFor("8am")
	assert.Error(t, err)
}
