package commands_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPlaceOrderHandler(
	factory *MockOrderUoWFactory, offers *MockOfferLookup, vouchers *MockVoucherLookup, t *testing.T,
) commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		factory, testPipelines(t), "Pending", offers, vouchers)
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), "100001", testTotals(t), []*order.Line{testLine(t, 2)})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newPlaceOrderHandler(factory, new(MockOfferLookup), new(MockVoucherLookup), t)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_SnapshotsDiscountSources(t *testing.T) {
	ctx := t.Context()
	offerID := kernel.NewUUID()
	voucherID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), "100002", testTotals(t), []*order.Line{testLine(t, 2)})
	require.NoError(t, err)
	cmd = cmd.WithDiscounts([]commands.PlaceOrderDiscount{{
		DiscountID: kernel.NewUUID(),
		Category:   order.DiscountCategoryBasket,
		Amount:     testMoney(t, "5.00"),
		Frequency:  1,
		OfferID:    &offerID,
		VoucherID:  &voucherID,
	}})

	offers := new(MockOfferLookup)
	offers.On("OfferName", mock.Anything, offerID).Return("Summer sale", true, nil).Once()
	vouchers := new(MockVoucherLookup)
	vouchers.On("VoucherCode", mock.Anything, voucherID).Return("SUMMER10", true, nil).Once()

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		discounts := o.Discounts()
		return len(discounts) == 1 &&
			discounts[0].OfferName() == "Summer sale" &&
			discounts[0].VoucherCode() == "SUMMER10"
	})).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newPlaceOrderHandler(factory, offers, vouchers, t)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	offers.AssertExpectations(t)
	vouchers.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly
	h := newPlaceOrderHandler(new(MockOrderUoWFactory), new(MockOfferLookup), new(MockVoucherLookup), t)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}

func TestPlaceOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), "100003", testTotals(t), []*order.Line{testLine(t, 2)})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(repo).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newPlaceOrderHandler(factory, new(MockOfferLookup), new(MockVoucherLookup), t)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestNewPlaceOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand(
		kernel.UUID{}, "", order.Totals{}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrOrderNumberIsRequired)
	require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
}
