package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/logisticsfuture/identity/internal/identity/store"
)

// HousekeepingService periodically purges expired refresh and reset token
// rows. Validity never depends on the sweep (lookups filter on expiry); this
// only prevents unbounded growth of the ledgers.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a sweeper with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker and blocks until any in-progress sweep is done.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes expired rows. Each deletion is independent; a failure in
// one ledger does not stop the other.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now()

	if err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	} else {
		s.Logger.Debug("deleted expired refresh tokens")
	}

	if err := s.Store.ResetTokens().DeleteExpiredResetTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired reset tokens", "error", err)
	} else {
		s.Logger.Debug("deleted expired reset tokens")
	}
}
