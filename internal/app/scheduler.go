package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/service"
)

const (
	reminderInterval = time.Hour
	reminderWindow   = 24 * time.Hour
)

// Scheduler owns the background tasks of the process. Currently that is the
// reminder sweep for confirmed sessions starting soon.
type Scheduler struct {
	bookings *service.BookingService
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewScheduler(bookings *service.BookingService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting background scheduler")
	go s.runReminderTask(ctx)
}

// Stop halts the background tasks.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runReminderTask(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("reminder task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("reminder task cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if err := s.bookings.SendDueReminders(ctx, reminderWindow); err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
	}
}
