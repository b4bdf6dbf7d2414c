package queries_test

import (
	"context"
	"testing"
	"time"

	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetPendingDeliveryOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetPendingDeliveryOrdersQueryHandler
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.StatusEventDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetPendingDeliveryOrdersQueryHandler(db)
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_status_events, order_items, orders").Error
	suite.Require().NoError(err)
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetPendingDeliveryOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) TestHandle_ReturnsBacklogOldestFirst() {
	older := suite.seedOrder(time.Now().Add(-2*time.Hour), order.PaymentConfirmed{})
	newer := suite.seedOrder(time.Now().Add(-1*time.Hour), order.PaymentConfirmed{})

	result, err := suite.handler.Handle(context.Background(), queries.NewGetPendingDeliveryOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(older.ID(), result[0].ID)
	suite.Equal(older.Number(), result[0].Number)
	suite.Equal("Hostel B, Room 214", result[0].Street)
	suite.Equal("north-campus", result[0].Zone)

	suite.Equal(newer.ID(), result[1].ID)
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) TestHandle_ExcludesOrdersOutsideTheQueue() {
	// Unpaid order: not yet in the queue
	suite.seedOrder(time.Now())

	// Assigned order: already left the queue
	queued := suite.seedOrder(time.Now(), order.PaymentConfirmed{})
	info, err := order.NewAgentInfo(kernel.NewUUID(), "Ravi", "+91-9876543210")
	suite.Require().NoError(err)
	suite.Require().NoError(queued.Apply(order.AssignmentSucceeded{Agent: info}, time.Now()))
	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Update(context.Background(), queued))

	result, err := suite.handler.Handle(context.Background(), queries.NewGetPendingDeliveryOrdersQuery())

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetPendingDeliveryOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetPendingDeliveryOrdersQuery constructor")
}

// seedOrder persists an order created at the given time and advanced through
// the given lifecycle events.
func (suite *GetPendingDeliveryOrdersQueryHandlerTestSuite) seedOrder(
	createdAt time.Time, events ...order.Event,
) *order.Order {
	shopID := kernel.NewUUID()

	price, err := kernel.MoneyFromString("80")
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "Veg Thali", price, 2, shopID)
	suite.Require().NoError(err)

	address, err := order.NewAddress("Hostel B, Room 214", "north-campus")
	suite.Require().NoError(err)

	orderID := kernel.NewUUID()
	testOrder, err := order.NewOrder(
		orderID,
		"ORD-"+orderID.String()[:8],
		kernel.NewUUID(),
		[]order.Item{item},
		address,
		createdAt,
	)
	suite.Require().NoError(err)

	for _, event := range events {
		suite.Require().NoError(testOrder.Apply(event, createdAt))
	}

	repo := orderrepo.NewGormOrderRepository(suite.db, &mockAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), testOrder))
	return testOrder
}

func TestGetPendingDeliveryOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetPendingDeliveryOrdersQueryHandlerTestSuite))
}
