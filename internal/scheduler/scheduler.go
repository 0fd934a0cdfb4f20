// Package scheduler runs the simulated backend: on-demand batch processes
// and a cron loop that fires them periodically.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{logger}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger: logger,
	}
}

// Add registers fn under spec, e.g. "@every 6h". Overlapping runs of the
// same job are skipped.
func (s *Scheduler) Add(ctx context.Context, name, spec string, fn func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(ctx); err != nil {
			s.logger.Warn("scheduled job failed", slog.String("job", name), slog.Any("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%s): %w", name, err)
	}
	s.logger.Info("scheduled job", slog.String("job", name), slog.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and returns a context that is done once running
// jobs have returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger routes robfig/cron's logging through slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
