package jobs

import (
	"context"
	"time"
)

// DefaultJobTimeout ограничение на один запуск задачи
const DefaultJobTimeout = time.Minute

// WindowPruner удаление окон доступности, закончившихся до момента t
type WindowPruner interface {
	DeleteEndedBefore(ctx context.Context, t time.Time) (int64, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Runner фоновые задачи обслуживания
type Runner struct {
	windows      WindowPruner
	timeProvider TimeProvider
	timeout      time.Duration
	logger       Logger
}

func NewRunner(windows WindowPruner, logger Logger) *Runner {
	return &Runner{
		windows:      windows,
		timeProvider: realTimeProvider{},
		timeout:      DefaultJobTimeout,
		logger:       logger,
	}
}

// runWithRecovery паника внутри задачи не должна останавливать планировщик
func (r *Runner) runWithRecovery(jobName string, job func(ctx context.Context) error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Job %s panicked: %v", jobName, p)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		r.logger.Error("Job %s failed after %s: %v", jobName, time.Since(start), err)
		return
	}
	r.logger.Info("Job %s completed in %s", jobName, time.Since(start))
}
