package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetEligibleOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	handler   queries.GetEligibleOrdersQueryHandler
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetEligibleOrdersQueryHandler(db)
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetEligibleOrdersQuery(nil)
	suite.Require().NoError(err)

	feed, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(feed)
	suite.Empty(feed)
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) TestHandle_ReturnsOldestFirst() {
	now := time.Now().UTC()
	older := suite.seedPackedOrder("downtown", now.Add(-3*time.Minute))
	newer := suite.seedPackedOrder("downtown", now.Add(-time.Minute))

	query, err := queries.NewGetEligibleOrdersQuery(nil)
	suite.Require().NoError(err)

	feed, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(feed, 2)
	suite.True(feed[0].ID.IsEqual(older.ID()))
	suite.True(feed[1].ID.IsEqual(newer.ID()))
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) TestHandle_ZoneFilter() {
	now := time.Now().UTC()
	inZone := suite.seedPackedOrder("downtown", now)
	suite.seedPackedOrder("harbor", now)

	zone, err := kernel.NewZone("downtown")
	suite.Require().NoError(err)

	query, err := queries.NewGetEligibleOrdersQuery(&zone)
	suite.Require().NoError(err)

	feed, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(feed, 1)
	suite.True(feed[0].ID.IsEqual(inZone.ID()))
	suite.True(feed[0].Zone.IsEqual(zone))
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) TestHandle_ExcludesClaimedOrders() {
	now := time.Now().UTC()
	claimable := suite.seedPackedOrder("downtown", now)
	claimed := suite.seedPackedOrder("downtown", now)

	uow := suite.factory.Create()
	_, err := uow.OrderRepository().ClaimForCourier(context.Background(), claimed.ID(), kernel.NewUUID())
	suite.Require().NoError(err)

	query, err := queries.NewGetEligibleOrdersQuery(nil)
	suite.Require().NoError(err)

	feed, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(feed, 1)
	suite.True(feed[0].ID.IsEqual(claimable.ID()))
}

func (suite *GetEligibleOrdersQueryHandlerTestSuite) seedPackedOrder(zoneName string, eligibleSince time.Time) *order.Order {
	zone, err := kernel.NewZone(zoneName)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), zone)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Confirm())
	_, err = o.MarkEligible(eligibleSince)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(context.Background(), o))
	return o
}

func TestGetEligibleOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetEligibleOrdersQueryHandlerTestSuite))
}
