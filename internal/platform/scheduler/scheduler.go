// Package scheduler fires rate synchronization at fixed times of day and once
// at process start when the stored table is stale.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/commercekit/fxengine/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler owns the refresh lifecycle. It has two states, stopped and
// running; Start and Stop are no-ops (with a warning) when called in the
// wrong state. Overlap between triggers is not handled here: the sync
// service's in-flight gate rejects a run that would overlap, whether the
// trigger was scheduled or manual.
type Scheduler struct {
	syncSvc  portssvc.RateSyncSvcFacade
	times    []string // "HH:MM"
	location *time.Location
	logger   *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron // nil while stopped
}

// New creates a Scheduler firing at the given wall-clock times in the given
// timezone.
func New(syncSvc portssvc.RateSyncSvcFacade, times []string, location *time.Location, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncSvc:  syncSvc,
		times:    times,
		location: location,
		logger:   logger,
	}
}

// Start registers one cron entry per configured trigger time and begins
// firing. Calling Start while already running warns and does nothing.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.logger.Warn("Scheduler already running, ignoring Start")
		return nil
	}

	c := cron.New(cron.WithLocation(s.location))
	registered := 0
	for _, t := range s.times {
		spec, err := cronSpecFor(t)
		if err != nil {
			s.logger.Warn("Skipping invalid refresh time", slog.String("time", t), slog.String("error", err.Error()))
			continue
		}
		if _, err := c.AddFunc(spec, s.tick); err != nil {
			s.logger.Warn("Failed to register refresh trigger", slog.String("time", t), slog.String("error", err.Error()))
			continue
		}
		registered++
	}
	if registered == 0 {
		return fmt.Errorf("no valid refresh times configured")
	}

	c.Start()
	s.cron = c
	s.logger.Info("Scheduler started",
		slog.Int("triggers", registered),
		slog.String("timezone", s.location.String()),
	)
	return nil
}

// Stop cancels all pending triggers. An in-flight fetch is not interrupted;
// it completes or times out on its own. Calling Stop while already stopped
// warns and does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		s.logger.Warn("Scheduler already stopped, ignoring Stop")
		return
	}

	s.cron.Stop()
	s.cron = nil
	s.logger.Info("Scheduler stopped")
}

// RunInitialCheck synchronizes once, outside the fixed schedule, when the
// stored table is stale at startup. This bounds how old served rates can be
// after a restart to one TTL window.
func (s *Scheduler) RunInitialCheck(ctx context.Context) {
	fresh, err := s.syncSvc.IsFresh(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Warn("Freshness check failed at startup, forcing refresh", slog.String("error", err.Error()))
	}
	if fresh {
		s.logger.Info("Stored rates are fresh, skipping startup refresh")
		return
	}

	result := s.syncSvc.Synchronize(ctx)
	if !result.Success {
		// Logged by the sync service; the next scheduled trigger retries.
		return
	}
	s.logger.Info("Startup refresh completed", slog.Int("rates_written", result.RatesWritten))
}

// tick is the payload of every scheduled trigger. Synchronize reports all
// failures (including an overlapping run) through its result and logs them,
// so a bad network day never crashes the background loop.
func (s *Scheduler) tick() {
	s.syncSvc.Synchronize(context.Background())
}

// cronSpecFor converts a "HH:MM" wall-clock time into a standard 5-field
// cron spec.
func cronSpecFor(hhmm string) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}
