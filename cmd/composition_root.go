package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/broadcast"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	broadcaster *broadcast.Broadcaster
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		broadcaster: broadcast.NewBroadcaster(logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) Broadcaster() *broadcast.Broadcaster {
	return c.broadcaster
}

func (c *CompositionRoot) CourierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) OrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) UoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.OrderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.OrderUoWFactory())
}

func (c *CompositionRoot) CreateMarkOrderEligibleCommandHandler() commands.MarkOrderEligibleCommandHandler {
	return commands.NewMarkOrderEligibleCommandHandler(c.OrderUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.OrderUoWFactory())
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.UoWFactory())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.OrderUoWFactory())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.CourierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	return commands.NewSetCourierAvailabilityCommandHandler(c.CourierUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateSweepStaleCouriersCommandHandler() commands.SweepStaleCouriersCommandHandler {
	return commands.NewSweepStaleCouriersCommandHandler(c.CourierUoWFactory(), c.broadcaster)
}

func (c *CompositionRoot) CreateGetEligibleOrdersQueryHandler() queries.GetEligibleOrdersQueryHandler {
	return queries.NewGetEligibleOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateMarkOrderEligibleCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateGetEligibleOrdersQueryHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CourierUoWFactory(),
		c.broadcaster,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	staleCourierJob := jobs.NewStaleCourierJob(
		c.CreateSweepStaleCouriersCommandHandler(),
		c.config.HeartbeatTTL,
		c.config.StaleSweepSchedule,
		c.logger,
	)
	rebroadcastJob := jobs.NewRebroadcastJob(
		c.CreateGetEligibleOrdersQueryHandler(),
		c.broadcaster,
		c.config.RebroadcastSchedule,
		c.logger,
	)
	return jobs.NewJobManager(staleCourierJob, rebroadcastJob)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
