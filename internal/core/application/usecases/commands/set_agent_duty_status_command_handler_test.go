package commands_test

import (
	"testing"
	"time"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/agent"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetAgentDutyStatusCommandHandler_Handle_AgentGoesOffDuty(t *testing.T) {
	ctx := t.Context()

	testAgent := newAvailableAgent(t, "Ravi")
	cmd, err := commands.NewSetAgentDutyStatusCommand(testAgent.ID(), agent.NotAvailable,
		agentPrincipal(t, testAgent))
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, testAgent.ID()).Return(testAgent, nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetAgentDutyStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, agent.NotAvailable, testAgent.DutyStatus())
}

func TestSetAgentDutyStatusCommandHandler_Handle_BusyAgentIsRejected(t *testing.T) {
	ctx := t.Context()

	testAgent := newAvailableAgent(t, "Ravi")
	require.NoError(t, testAgent.Reserve(time.Now()))

	cmd, err := commands.NewSetAgentDutyStatusCommand(testAgent.ID(), agent.NotAvailable,
		agentPrincipal(t, testAgent))
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, testAgent.ID()).Return(testAgent, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetAgentDutyStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, agent.ErrAgentIsBusy)
	agentRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestSetAgentDutyStatusCommandHandler_Handle_OtherAgentIsRejected(t *testing.T) {
	ctx := t.Context()

	testAgent := newAvailableAgent(t, "Ravi")
	other := newAvailableAgent(t, "Meena")

	cmd, err := commands.NewSetAgentDutyStatusCommand(testAgent.ID(), agent.NotAvailable,
		agentPrincipal(t, other))
	require.NoError(t, err)

	factory := new(MockAgentUoWFactory)
	handler := commands.NewSetAgentDutyStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestSetAgentDutyStatusCommandHandler_Handle_AdminMayToggleAnyAgent(t *testing.T) {
	ctx := t.Context()

	testAgent := newAvailableAgent(t, "Ravi")
	cmd, err := commands.NewSetAgentDutyStatusCommand(testAgent.ID(), agent.NotAvailable, adminPrincipal(t))
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, testAgent.ID()).Return(testAgent, nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetAgentDutyStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}

func TestSetAgentDutyStatusCommand_BusyCannotBeRequested(t *testing.T) {
	testAgent := newAvailableAgent(t, "Ravi")

	cmd, err := commands.NewSetAgentDutyStatusCommand(testAgent.ID(), agent.Busy,
		agentPrincipal(t, testAgent))
	require.NoError(t, err)

	// The command accepts any valid status; the aggregate rejects Busy.
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	ctx := t.Context()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, testAgent.ID()).Return(testAgent, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetAgentDutyStatusCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, agent.Available, testAgent.DutyStatus())
}

func TestSetAgentAdminControlCommandHandler_Handle_AdminDisablesAgent(t *testing.T) {
	ctx := t.Context()

	testAgent := newAvailableAgent(t, "Ravi")
	cmd, err := commands.NewSetAgentAdminControlCommand(testAgent.ID(), agent.Inactive, adminPrincipal(t))
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		agentRepo.On("Get", ctx, testAgent.ID()).Return(testAgent, nil).Once(),
		agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSetAgentAdminControlCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, agent.Inactive, testAgent.AdminControl())
	assert.False(t, testAgent.IsEligible())
}

func TestSetAgentAdminControlCommandHandler_Handle_NonAdminIsRejected(t *testing.T) {
	ctx := t.Context()

	testAgent := newAvailableAgent(t, "Ravi")
	cmd, err := commands.NewSetAgentAdminControlCommand(testAgent.ID(), agent.Inactive,
		agentPrincipal(t, testAgent))
	require.NoError(t, err)

	factory := new(MockAgentUoWFactory)
	handler := commands.NewSetAgentAdminControlCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	factory.AssertNotCalled(t, "Create")
}
