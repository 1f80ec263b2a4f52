package loads

import (
	"context"
	"fmt"

	"github.com/dvloznov/bankview/internal/logger"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler triggers Reload on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	manager  *Manager
	schedule string
	log      zerolog.Logger
}

// NewScheduler validates schedule (standard five-field cron or a
// descriptor such as "@every 10m") and prepares a scheduler. It does not
// start until Start is called.
func NewScheduler(manager *Manager, schedule string, log zerolog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("NewScheduler: invalid schedule %q: %w", schedule, err)
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{log}),
		cron.SkipIfStillRunning(cronLogger{log}),
	))

	return &Scheduler{
		cron:     c,
		manager:  manager,
		schedule: schedule,
		log:      logger.Component(log, "scheduler"),
	}, nil
}

// Start registers the reload job and starts the scheduler. Each run uses a
// context derived from ctx so shutdown cancels an in-flight load.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		runCtx := logger.WithContext(ctx, s.log)
		if _, err := s.manager.Reload(runCtx, TriggerSchedule); err != nil {
			s.log.Warn().Err(err).Msg("Scheduled reload failed")
		}
	})
	if err != nil {
		return fmt.Errorf("Start: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("Scheduled reloads")
	return nil
}

// Stop stops the scheduler. The returned context is done when running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger routes cron's internal logging through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

var _ cron.Logger = cronLogger{}
