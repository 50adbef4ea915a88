package reminder

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// DefaultSchedule triggers a run every five minutes.
const DefaultSchedule = "@every 5m"

// Scheduler triggers reminder runs on a cron schedule when the service runs
// as a long-lived process instead of behind an external trigger.
type Scheduler struct {
	service  *Service
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron
}

// NewScheduler validates the schedule and prepares the cron runner.
// Runs never overlap: a tick that fires while a run is in progress is skipped.
func NewScheduler(service *Service, schedule string, logger *zap.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	cl := cronLogger{logger.Sugar()}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	s := &Scheduler{service: service, schedule: schedule, logger: logger, cron: c}
	if _, err := c.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	if _, err := s.service.Run(context.Background(), nil); err != nil {
		s.logger.Error("scheduled reminder run failed", zap.Error(err))
	}
}

// StartScheduler starts the cron runner with the application and stops it,
// waiting for an in-flight run, on shutdown.
func (s *Scheduler) StartScheduler(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("starting reminder scheduler", zap.String("schedule", s.schedule))
			s.cron.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("stopping reminder scheduler")
			select {
			case <-s.cron.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
