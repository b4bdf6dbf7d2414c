package dispatchrepo_test

import (
	"context"
	"testing"
	"time"

	"campusdelivery/internal/adapters/out/postgres/dispatchrepo"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DispatchStateRepositoryIntegrationTestSuite provides integration tests for
// the round-robin cursor persistence using PostgreSQL containers.
type DispatchStateRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *dispatchrepo.GormDispatchStateRepository
}

func (suite *DispatchStateRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&dispatchrepo.DispatchStateDTO{}))
}

func (suite *DispatchStateRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE dispatch_state").Error)

	suite.repository = dispatchrepo.NewGormDispatchStateRepository(suite.db)
}

func (suite *DispatchStateRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DispatchStateRepositoryIntegrationTestSuite) TestGetCursor_NoRow_ReturnsUnset() {
	cursor, err := suite.repository.GetCursor(context.Background())
	suite.Require().NoError(err)
	suite.Equal(-1, cursor)
}

func (suite *DispatchStateRepositoryIntegrationTestSuite) TestSetCursor_InsertsMissingRow() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.SetCursor(ctx, 0))

	cursor, err := suite.repository.GetCursor(ctx)
	suite.Require().NoError(err)
	suite.Equal(0, cursor)
}

func (suite *DispatchStateRepositoryIntegrationTestSuite) TestSetCursor_UpdatesExistingRow() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.SetCursor(ctx, 0))
	suite.Require().NoError(suite.repository.SetCursor(ctx, 3))

	cursor, err := suite.repository.GetCursor(ctx)
	suite.Require().NoError(err)
	suite.Equal(3, cursor)

	// Upserts must never grow the table past the single shared row
	var count int64
	suite.Require().NoError(suite.db.Model(&dispatchrepo.DispatchStateDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func TestDispatchStateRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DispatchStateRepositoryIntegrationTestSuite))
}
