package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAllCouriersQueryHandlerTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	handler   queries.GetAllCouriersQueryHandler
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetAllCouriersQueryHandler(db)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_ReturnsRosterOrderedByName() {
	suite.seedCourier("Walt", true)
	suite.seedCourier("Ada", false)

	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("Ada", result[0].Name)
	suite.False(result[0].IsOnline)
	suite.Equal("Walt", result[1].Name)
	suite.True(result[1].IsOnline)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) seedCourier(name string, online bool) {
	zone, err := kernel.NewZone("downtown")
	suite.Require().NoError(err)

	c, err := courier.NewCourier(kernel.NewUUID(), name, zone)
	suite.Require().NoError(err)
	if online {
		c.GoOnline(time.Now().UTC())
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.CourierRepository().Add(context.Background(), c))
}

func TestGetAllCouriersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GetAllCouriersQueryHandlerTestSuite))
}
