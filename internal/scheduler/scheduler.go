package scheduler

import (
	"fmt"
	"time"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"StockInsight/internal/loader"
	"StockInsight/internal/recorder"
)

// Scheduler manages the cron task that refreshes the dataset.
type Scheduler struct {
	Cron     *cron.Cron
	Dataset  *loader.Dataset
	Recorder recorder.Recorder
	Logger   *log.Logger
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ds *loader.Dataset, rec recorder.Recorder, logger *log.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Dataset:  ds,
		Recorder: rec,
		Logger:   logger,
	}
}

// Register adds the reload task on the given cron spec.
func (s *Scheduler) Register(reloadCron string) error {
	if _, err := s.Cron.AddFunc(reloadCron, func() { s.reload(recorder.TriggerCron) }); err != nil {
		return fmt.Errorf("register reload task: %w", err)
	}
	s.Logger.Info().Str("cron", reloadCron).Msg("reload task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info().Msg("scheduler stopped")
}

// RunReloadNow executes the reload task immediately.
func (s *Scheduler) RunReloadNow() error {
	return s.reload(recorder.TriggerManual)
}

func (s *Scheduler) reload(trigger string) error {
	start := time.Now()
	rows, err := s.Dataset.Reload()
	evt := &recorder.LoadEvent{
		Source:   s.Dataset.SourceName(),
		Trigger:  trigger,
		Rows:     rows,
		Duration: time.Since(start),
	}
	if err != nil {
		evt.Err = err.Error()
		s.Logger.Error().Err(err).Str("trigger", trigger).Msg("reload failed, keeping previous data")
	} else {
		s.Logger.Info().Int("rows", rows).Str("trigger", trigger).Dur("took", evt.Duration).Msg("dataset reloaded")
	}

	if rerr := s.Recorder.RecordLoad(evt); rerr != nil {
		s.Logger.Error().Err(rerr).Msg("record load")
	}
	return err
}
