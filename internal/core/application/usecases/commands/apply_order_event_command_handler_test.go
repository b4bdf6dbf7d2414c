package commands_test

import (
	"testing"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyOrderEventCommandHandler_Handle_PickedUp(t *testing.T) {
	ctx := t.Context()

	testOrder, boundAgent := newAssignedOrder(t)
	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.AgentMarkedPickedUp{},
		agentPrincipal(t, boundAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PickedUp, testOrder.Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyOrderEventCommandHandler_Handle_DeliveredReleasesIdleAgent(t *testing.T) {
	ctx := t.Context()

	testOrder, boundAgent := newAssignedOrder(t)
	require.NoError(t, testOrder.Apply(order.AgentMarkedPickedUp{}, time.Now()))
	require.NoError(t, testOrder.Apply(order.AgentMarkedEnRoute{}, time.Now()))

	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.AgentMarkedDelivered{},
		agentPrincipal(t, boundAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountActiveByAgent", ctx, boundAgent.ID()).Return(0, nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, boundAgent.ID()).Return(boundAgent, nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	assert.Equal(t, agent.Available, boundAgent.DutyStatus())
	// The binding survives into the terminal status for audit.
	require.NotNil(t, testOrder.Agent())

	orderRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyOrderEventCommandHandler_Handle_AgentWithOtherActiveOrdersStaysBusy(t *testing.T) {
	ctx := t.Context()

	testOrder, boundAgent := newAssignedOrder(t)
	require.NoError(t, testOrder.Apply(order.AgentMarkedPickedUp{}, time.Now()))
	require.NoError(t, testOrder.Apply(order.AgentMarkedEnRoute{}, time.Now()))

	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.AgentMarkedDelivered{},
		agentPrincipal(t, boundAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountActiveByAgent", ctx, boundAgent.ID()).Return(1, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, agent.Busy, boundAgent.DutyStatus())
	agentRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestApplyOrderEventCommandHandler_Handle_ForeignAgentIsRejected(t *testing.T) {
	ctx := t.Context()

	testOrder, _ := newAssignedOrder(t)
	intruder := newAvailableAgent(t, "Someone Else")

	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.AgentMarkedPickedUp{},
		agentPrincipal(t, intruder))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, order.Assigned, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestApplyOrderEventCommandHandler_Handle_AdminCancelsUnassignedOrder(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingDeliveryOrder(t)
	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(),
		order.OrderCancelled{Reason: "shop closed"}, adminPrincipal(t))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, testOrder.Status())
}

func TestApplyOrderEventCommandHandler_Handle_CustomerCannotCancel(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingDeliveryOrder(t)
	customer, err := kernel.NewPrincipal(testOrder.UserID(), kernel.RoleCustomer)
	require.NoError(t, err)

	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.OrderCancelled{}, customer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestApplyOrderEventCommandHandler_Handle_DuplicateEventSkipsWrite(t *testing.T) {
	ctx := t.Context()

	testOrder, boundAgent := newAssignedOrder(t)
	require.NoError(t, testOrder.Apply(order.AgentMarkedPickedUp{}, time.Now()))

	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.AgentMarkedPickedUp{},
		agentPrincipal(t, boundAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestApplyOrderEventCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()

	testOrder, boundAgent := newAssignedOrder(t)

	// Delivered straight from assigned skips two steps.
	cmd, err := commands.NewApplyOrderEventCommand(testOrder.ID(), order.AgentMarkedDelivered{},
		agentPrincipal(t, boundAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyOrderEventCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
	assert.Equal(t, order.Assigned, testOrder.Status())
}
