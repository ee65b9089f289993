package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Jobs задачи, которые запускает планировщик
type Jobs interface {
	PruneExpiredAvailability()
}

type Logger interface {
	Info(format string, v ...interface{})
}

// Config расписания в формате cron с секундами
type Config struct {
	PruneExpiredAvailability string
}

// Scheduler запускает фоновые задачи по расписанию
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// New создает планировщик в UTC с точностью до секунды и регистрирует задачи
func New(jobs Jobs, cfg Config, logger Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	if _, err := c.AddFunc(cfg.PruneExpiredAvailability, jobs.PruneExpiredAvailability); err != nil {
		return nil, fmt.Errorf("scheduler: register PruneExpiredAvailability (%q): %w", cfg.PruneExpiredAvailability, err)
	}

	logger.Info("Scheduler: %d jobs registered", len(c.Entries()))
	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started")
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler: stopped")
}

// Entries количество зарегистрированных задач
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
