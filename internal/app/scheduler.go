package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IdleCloser закрывает неактивные сессии
type IdleCloser interface {
	CloseIdle(maxIdle time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sessions IdleCloser
	maxIdle  time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewScheduler создаёт новый планировщик. Проверка идёт раз в maxIdle/4,
// но не реже раза в час.
func NewScheduler(sessions IdleCloser, maxIdle time.Duration, logger *zap.Logger) *Scheduler {
	interval := min(maxIdle/4, time.Hour)
	if interval <= 0 {
		interval = time.Minute
	}

	return &Scheduler{
		sessions: sessions,
		maxIdle:  maxIdle,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("session_idle_timeout", s.maxIdle),
		zap.Duration("interval", s.interval))

	go s.runIdleSweepTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.doneChan
}

// runIdleSweepTask периодически закрывает сессии чатов без активности
func (s *Scheduler) runIdleSweepTask(ctx context.Context) {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			s.logger.Info("Idle session sweep stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Idle session sweep cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep() {
	if closed := s.sessions.CloseIdle(s.maxIdle); closed > 0 {
		s.logger.Info("Closed idle chat sessions", zap.Int("count", closed))
	}
}
