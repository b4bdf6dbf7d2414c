package commands_test

import (
	"testing"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingOrder(t)
	cmd, err := commands.NewConfirmPaymentCommand(testOrder.ID())
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

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	assigner := new(MockAgentAssigner)
	assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignAgentCommand")).Return(nil).Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory, assigner)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PendingDelivery, testOrder.Status())

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	assigner.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_DuplicateConfirmationSkipsWrite(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingDeliveryOrder(t) // already confirmed
	cmd, err := commands.NewConfirmPaymentCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	assigner := new(MockAgentAssigner)
	assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignAgentCommand")).Return(nil).Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory, assigner)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, testOrder.History().Len())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmPaymentCommandHandler_Handle_BusyPoolIsNotAnError(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingOrder(t)
	cmd, err := commands.NewConfirmPaymentCommand(testOrder.ID())
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

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	assigner := new(MockAgentAssigner)
	assigner.On("Handle", ctx, mock.AnythingOfType("commands.AssignAgentCommand")).
		Return(commands.ErrNoEligibleAgents).
		Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory, assigner)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PendingDelivery, testOrder.Status())
}

func TestConfirmPaymentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	testOrder := newPendingOrder(t)
	cmd, err := commands.NewConfirmPaymentCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).
			Return(nil, errs.NewObjectNotFoundError("order", testOrder.ID())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	assigner := new(MockAgentAssigner)

	handler := commands.NewConfirmPaymentCommandHandler(factory, assigner)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assigner.AssertNotCalled(t, "Handle", ctx, mock.Anything)
}

func TestConfirmPaymentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ConfirmPaymentCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewConfirmPaymentCommandHandler(factory, new(MockAgentAssigner))
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrConfirmPaymentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
