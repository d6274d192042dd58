package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeLineStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	line := testLine(t, 2)
	aggregate := testAggregate(t, "100042", line)
	cmd, err := commands.NewChangeLineStatusCommand("100042", line.ID(), "Shipped")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumberForUpdate", mock.Anything, "100042").Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishLineStatusChanged", mock.Anything,
		mock.MatchedBy(func(e order.LineStatusChanged) bool {
			return e.LineID.IsEqual(line.ID()) && e.NewStatus == "Shipped"
		})).Return(nil).Once()

	h := commands.NewChangeLineStatusCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Status("Shipped"), line.Status())
	publisher.AssertExpectations(t)
}

func TestChangeLineStatusCommandHandler_Handle_UnknownLine(t *testing.T) {
	ctx := t.Context()
	aggregate := testAggregate(t, "100042")
	cmd, err := commands.NewChangeLineStatusCommand("100042", kernel.NewUUID(), "Shipped")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("GetByNumberForUpdate", mock.Anything, "100042").Return(aggregate, nil).Once()
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeLineStatusCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrLineNotFound)
}

func TestNewChangeLineStatusCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewChangeLineStatusCommand("", kernel.UUID{}, "")
	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
