package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleCourierJob periodically forces couriers offline when their last
// heartbeat is older than the heartbeat TTL.
type StaleCourierJob struct {
	handler  commands.SweepStaleCouriersCommandHandler
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleCourierJob creates the sweep job. The schedule is a cron expression
// with a seconds field, e.g. "*/30 * * * * *".
func NewStaleCourierJob(
	handler commands.SweepStaleCouriersCommandHandler,
	ttl time.Duration,
	schedule string,
	logger *slog.Logger,
) *StaleCourierJob {
	return &StaleCourierJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_courier_job"),
	}
}

// Start begins the scheduled sweep.
func (j *StaleCourierJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepStaleCouriersCommand(j.ttl, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "stale courier sweep misconfigured", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty sweep is the normal outcome, not a failure.
			if !errors.Is(err, commands.ErrNoStaleCouriers) {
				j.logger.ErrorContext(ctx, "stale courier sweep failed", "error", err)
			}
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "stale courier job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Stop stops the scheduled sweep.
func (j *StaleCourierJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "stale courier job stopped")
}
