package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/repository"
)

// MaintenanceService runs the scheduled housekeeping jobs.
type MaintenanceService struct {
	Messages repository.MessageRepositoryInterface
	Logger   *zap.Logger

	// Now is swappable in tests. Defaults to time.Now.
	Now func() time.Time
}

// PurgeExpiredMessages deletes conversation messages past their TTL and
// returns the number removed. Running it twice in a row is harmless.
func (s *MaintenanceService) PurgeExpiredMessages() (int, error) {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	deleted, err := s.Messages.PurgeExpired(now)
	if err != nil {
		s.Logger.Error("purge expired messages", zap.Error(err))
		return 0, err
	}
	s.Logger.Info("expired messages purged", zap.Int("deleted", deleted))
	return deleted, nil
}
