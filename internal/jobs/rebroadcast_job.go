package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// RebroadcastJob periodically re-publishes still-unclaimed eligible orders
// through the broadcast channel. Couriers whose original notice was dropped
// or who connected late hear about the order on the next run.
type RebroadcastJob struct {
	feed      queries.GetEligibleOrdersQueryHandler
	publisher ports.EligibleOrderPublisher
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRebroadcastJob creates the re-broadcast job. The schedule is a cron
// expression with a seconds field, e.g. "*/15 * * * * *".
func NewRebroadcastJob(
	feed queries.GetEligibleOrdersQueryHandler,
	publisher ports.EligibleOrderPublisher,
	schedule string,
	logger *slog.Logger,
) *RebroadcastJob {
	return &RebroadcastJob{
		feed:      feed,
		publisher: publisher,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "rebroadcast_job"),
	}
}

// Start begins the scheduled re-broadcast.
func (j *RebroadcastJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		query, err := queries.NewGetEligibleOrdersQuery(nil)
		if err != nil {
			j.logger.ErrorContext(ctx, "rebroadcast misconfigured", "error", err)
			return
		}

		orders, err := j.feed.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "rebroadcast feed read failed", "error", err)
			return
		}

		for _, o := range orders {
			j.publisher.PublishOrderEligible(ports.OrderEligibleNotice{
				OrderID: o.ID,
				Zone:    o.Zone,
			})
		}

		if len(orders) > 0 {
			j.logger.DebugContext(ctx, "rebroadcast published notices", "count", len(orders))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "rebroadcast job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled re-broadcast.
func (j *RebroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "rebroadcast job stopped")
}
