package scheduler

import (
	"context"
	"errors"
	"time"

	"homework_status_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner is implemented by app.StatusWatcher.
type CycleRunner interface {
	RunCycle(ctx context.Context) (app.CycleResult, error)
}

type PollScheduler struct {
	cronEngine *cron.Cron
	runner     CycleRunner
	logger     *logrus.Entry
	period     time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	fatal  chan error
}

func NewPollScheduler(runner CycleRunner, logger *logrus.Entry, period time.Duration) *PollScheduler {
	return &PollScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithLogger(cron.PrintfLogger(logger)),
		),
		runner: runner,
		logger: logger,
		period: period,
		fatal:  make(chan error, 1),
	}
}

// Start runs the first cycle right away and then one cycle per period.
// A run still in progress when the next tick fires causes that tick to be skipped,
// so cycles never overlap.
func (s *PollScheduler) Start(ctx context.Context) {
	s.logger.WithField("period", s.period).Info("Starting poll scheduler...")
	s.ctx, s.cancel = context.WithCancel(ctx)

	job := cron.NewChain(cron.SkipIfStillRunning(cron.PrintfLogger(s.logger))).Then(cron.FuncJob(s.runCycle))

	job.Run()
	s.cronEngine.Schedule(cron.Every(s.period), job)
	s.cronEngine.Start()
	s.logger.Info("Poll scheduler started.")
}

// Fatal delivers the first error that must stop the process.
func (s *PollScheduler) Fatal() <-chan error {
	return s.fatal
}

func (s *PollScheduler) runCycle() {
	if s.ctx.Err() != nil {
		return
	}

	res, err := s.runner.RunCycle(s.ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.WithError(err).WithField("cycle_id", res.ID).Error("Poll cycle failed fatally")
		select {
		case s.fatal <- err:
		default:
		}
		s.cancel()
		return
	}

	s.logger.WithFields(logrus.Fields{
		"cycle_id": res.ID,
		"outcome":  res.Outcome,
	}).Debug("Poll cycle finished")
}

func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Poll scheduler gracefully stopped.")
}
