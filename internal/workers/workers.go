package workers

import (
	"context"
	"fmt"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/metrics"
	"github.com/MKhiriev/miniforum/internal/service"
	"github.com/robfig/cron/v3"
)

// Workers owns the cron scheduler and the workers registered on it.
type Workers struct {
	cron    *cron.Cron
	workers []Worker

	logger *logger.Logger
}

// NewWorkers schedules the session purge worker according to cfg.
func NewWorkers(cfg config.Workers, sessions service.SessionService, m *metrics.Metrics, logger *logger.Logger) (*Workers, error) {
	w := newWorkers(logger)

	purge := NewSessionPurgeWorker(sessions, m, logger)
	if err := w.schedule(cfg.SessionPurgeSchedule, purge); err != nil {
		return nil, fmt.Errorf("scheduling session purge: %w", err)
	}

	logger.Info().Str("schedule", cfg.SessionPurgeSchedule).Msg("session purge scheduled")
	return w, nil
}

func newWorkers(logger *logger.Logger) *Workers {
	cronLog := cronLogger{logger: logger.Component("cron")}
	return &Workers{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

func (w *Workers) schedule(spec string, worker Worker) error {
	if _, err := w.cron.AddJob(spec, cron.FuncJob(worker.Run)); err != nil {
		return err
	}
	w.workers = append(w.workers, worker)
	return nil
}

// Run performs one pass of every worker right away, in registration order.
// The server calls it once at startup, before Start.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Start launches the scheduler in its own goroutine.
func (w *Workers) Start() {
	w.cron.Start()
}

// Stop halts the scheduler. The returned context is done once running jobs
// have finished.
func (w *Workers) Stop() context.Context {
	return w.cron.Stop()
}
