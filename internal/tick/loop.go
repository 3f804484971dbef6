package tick

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Loop вызывает step на каждом такте до остановки.
type Loop struct {
	interval time.Duration
	step     func()
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop calling step every interval.
func NewLoop(interval time.Duration, step func()) *Loop {
	return &Loop{
		interval: interval,
		step:     step,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the loop (blocks until context is canceled or Stop is called)
func (l *Loop) Start(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Info("tick loop started", "interval", l.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick loop stopping")
			return ctx.Err()

		case <-l.stopCh:
			slog.Info("tick loop stopped")
			return nil

		case <-ticker.C:
			l.step()
		}
	}
}

// Stop останавливает цикл. Повторный вызов безопасен.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}
