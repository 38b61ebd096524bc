package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Authenticator поддерживает сессию портала
type Authenticator interface {
	EnsureAuthenticated(ctx context.Context) (bool, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	portal   Authenticator
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(portal Authenticator, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		portal:   portal,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи; при нулевом интервале ничего не делает
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Session keep-alive disabled")
		close(s.done)
		return
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runKeepAliveTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

// runKeepAliveTask периодически проверяет сессию портала, чтобы первый
// запрос после простоя не ждал входа
func (s *Scheduler) runKeepAliveTask(ctx context.Context) {
	defer close(s.done)

	s.keepAlive(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.keepAlive(ctx)
		case <-s.stopChan:
			s.logger.Info("Keep-alive task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Keep-alive task cancelled")
			return
		}
	}
}

func (s *Scheduler) keepAlive(ctx context.Context) {
	ok, err := s.portal.EnsureAuthenticated(ctx)
	if err != nil {
		s.logger.Warn("Portal session keep-alive failed", zap.Error(err))
		return
	}
	s.logger.Debug("Portal session checked", zap.Bool("authenticated", ok))
}
