package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/service"
)

// Scheduler owns the nightly purge job.
type Scheduler struct {
	cron        *cron.Cron
	maintenance *service.MaintenanceService
	logger      *zap.Logger
}

func New(maintenance *service.MaintenanceService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		maintenance: maintenance,
		logger:      logger,
	}
}

// Start registers the purge job at minute zero of the given hour, every
// day, and starts the cron loop in its own goroutine.
func (s *Scheduler) Start(purgeHour int) error {
	spec := fmt.Sprintf("0 %d * * *", purgeHour)
	_, err := s.cron.AddFunc(spec, func() {
		deleted, err := s.maintenance.PurgeExpiredMessages()
		if err != nil {
			s.logger.Error("scheduled purge failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduled purge done", zap.Int("deleted", deleted))
	})
	if err != nil {
		return fmt.Errorf("register purge job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("purge_schedule", spec))
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
