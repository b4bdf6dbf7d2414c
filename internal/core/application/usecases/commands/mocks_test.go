package commands_test

import (
	"context"
	"testing"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInPendingDeliveryStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByAgent(ctx context.Context, agentID kernel.UUID) (int, error) {
	args := m.Called(ctx, agentID)
	return args.Int(0), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetAll(ctx context.Context) ([]*agent.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetAllEligible(ctx context.Context) ([]*agent.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

type MockDispatchStateRepository struct{ mock.Mock }

func (m *MockDispatchStateRepository) GetCursor(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDispatchStateRepository) SetCursor(ctx context.Context, cursor int) error {
	args := m.Called(ctx, cursor)
	return args.Error(0)
}

// MockUoW satisfies every unit of work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

func (m *MockUoW) DispatchStateRepository() ports.DispatchStateRepository {
	args := m.Called()
	return args.Get(0).(ports.DispatchStateRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockOrderAgentUoWFactory struct{ mock.Mock }

func (m *MockOrderAgentUoWFactory) Create() commands.OrderAgentUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderAgentUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, orderID kernel.UUID, amount kernel.Money) error {
	args := m.Called(ctx, orderID, amount)
	return args.Error(0)
}

type MockAgentAssigner struct{ mock.Mock }

func (m *MockAgentAssigner) Handle(ctx context.Context, command commands.AssignAgentCommand) error {
	args := m.Called(ctx, command)
	return args.Error(0)
}

// Test fixtures shared by the handler tests.

func testItems(t *testing.T) []order.Item {
	t.Helper()
	price, err := kernel.MoneyFromString("80")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Veg Thali", price, 2, kernel.NewUUID())
	require.NoError(t, err)
	return []order.Item{item}
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress("Hostel B, Room 214", "north-campus")
	require.NoError(t, err)
	return address
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-AB12CD34", kernel.NewUUID(),
		testItems(t), testAddress(t), time.Now())
	require.NoError(t, err)
	return o
}

func newPendingDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.Apply(order.PaymentConfirmed{}, time.Now()))
	return o
}

func newAvailableAgent(t *testing.T, name string) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), name, "+91-9876543210", "north-campus", time.Now())
	require.NoError(t, err)
	return a
}

// newAssignedOrder binds the order to a freshly reserved agent and returns both.
func newAssignedOrder(t *testing.T) (*order.Order, *agent.Agent) {
	t.Helper()
	o := newPendingDeliveryOrder(t)
	a := newAvailableAgent(t, "Ravi")
	require.NoError(t, a.Reserve(time.Now()))

	info, err := order.NewAgentInfo(a.ID(), a.Name(), a.Phone())
	require.NoError(t, err)
	require.NoError(t, o.Apply(order.AssignmentSucceeded{Agent: info}, time.Now()))
	return o, a
}

func agentPrincipal(t *testing.T, a *agent.Agent) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(a.ID(), kernel.RoleAgent)
	require.NoError(t, err)
	return p
}

func adminPrincipal(t *testing.T) kernel.Principal {
	t.Helper()
	p, err := kernel.NewPrincipal(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	return p
}
