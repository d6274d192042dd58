package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddOrderNoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t, "100042")
	cmd, err := commands.NewAddOrderNoteCommand("100042", kernel.NewUUID(),
		order.NoteTypeInfo, "customer called", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumber", mock.Anything, "100042").Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddOrderNoteCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, aggregate.Notes(), 1)
	require.Equal(t, "customer called", aggregate.Notes()[0].Message())
}

func TestNewAddOrderNoteCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewAddOrderNoteCommand("", kernel.UUID{}, order.NoteTypeInfo, "", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoteMessageIsRequired)
}

func TestRecordCommunicationEventCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t, "100042")
	cmd, err := commands.NewRecordCommunicationEventCommand("100042", kernel.NewUUID(),
		"ORDER_STATUS_CHANGED", "Order status changed")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumber", mock.Anything, "100042").Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordCommunicationEventCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, aggregate.CommunicationEvents(), 1)
}

func TestNewRecordCommunicationEventCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewRecordCommunicationEventCommand("", kernel.UUID{}, "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrEventCodeIsRequired)
}
