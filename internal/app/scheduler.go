package app

import (
	"context"
	"time"

	"github.com/tourbeau/tourbot/internal/controller/state"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessions   *state.Manager
	sessionTTL time.Duration
	logger     *zap.Logger
	stopChan   chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sessions *state.Manager, sessionTTL time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runSessionPruneTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runSessionPruneTask периодически удаляет брошенные сессии регистрации,
// иначе незавершённые диалоги копятся в памяти бесконечно
func (s *Scheduler) runSessionPruneTask(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if pruned := s.sessions.PruneStale(s.sessionTTL); pruned > 0 {
				s.logger.Info("Pruned stale registration sessions",
					zap.Int("count", pruned),
					zap.Duration("ttl", s.sessionTTL))
			}
		case <-s.stopChan:
			s.logger.Info("Session prune task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session prune task cancelled")
			return
		}
	}
}
