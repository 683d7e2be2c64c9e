package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInventoryClient struct{ mock.Mock }

func (m *MockInventoryClient) Reserve(
	ctx context.Context, orderID kernel.UUID, items []ports.ReservationItem,
) (string, error) {
	args := m.Called(ctx, orderID, items)
	return args.String(0), args.Error(1)
}

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := restoredPendingOrder(t, orderID)
	cmd, err := commands.NewConfirmOrderCommand(orderID)
	require.NoError(t, err)

	inventory := new(MockInventoryClient)
	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		inventory.On("Reserve", mock.Anything, orderID, mock.MatchedBy(func(items []ports.ReservationItem) bool {
			return len(items) == 1 && items[0].Quantity == 1
		})).Return("res-42", nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.MatchedBy(func(records []*outbox.Record) bool {
			return len(records) == 1 && records[0].EventType() == order.OrderConfirmedEventType
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, inventory)
	snapshot, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, aggregate.Status())
	assert.Equal(t, "Confirmed", snapshot.Status)
	inventory.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_InsufficientInventory(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := restoredPendingOrder(t, orderID)
	cmd, err := commands.NewConfirmOrderCommand(orderID)
	require.NoError(t, err)

	refusal := errs.NewInsufficientInventoryError([]string{"Burger"})

	inventory := new(MockInventoryClient)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		inventory.On("Reserve", mock.Anything, orderID, mock.Anything).Return("", refusal).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, inventory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInsufficientInventory))
	// the refusal is definitive: exactly one reservation call, no retry,
	// and the order stays pending with no events recorded
	assert.Equal(t, order.Pending, aggregate.Status())
	assert.Empty(t, aggregate.DomainEvents())
	inventory.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_RetriesUnavailableInventory(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := restoredPendingOrder(t, orderID)
	cmd, err := commands.NewConfirmOrderCommand(orderID)
	require.NoError(t, err)

	unavailable := errs.NewInventoryUnavailableError(errors.New("connection refused"))

	inventory := new(MockInventoryClient)
	inventory.On("Reserve", mock.Anything, orderID, mock.Anything).Return("", unavailable).Twice()
	inventory.On("Reserve", mock.Anything, orderID, mock.Anything).Return("res-42", nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	outboxRepo := new(MockOutboxRepository)
	outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OutboxRepository").Return(outboxRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, inventory)
	snapshot, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, aggregate.Status())
	assert.Equal(t, "Confirmed", snapshot.Status)
	inventory.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_UnavailableInventoryExhausted(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := restoredPendingOrder(t, orderID)
	cmd, err := commands.NewConfirmOrderCommand(orderID)
	require.NoError(t, err)

	unavailable := errs.NewInventoryUnavailableError(errors.New("connection refused"))

	inventory := new(MockInventoryClient)
	inventory.On("Reserve", mock.Anything, orderID, mock.Anything).Return("", unavailable).Times(3)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, inventory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrInventoryUnavailable))
	assert.Equal(t, order.Pending, aggregate.Status())
	inventory.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_EmptyOrderFailsBeforeReservation(t *testing.T) {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "", "", nil)
	require.NoError(t, err)
	now := time.Now().UTC()
	empty, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), address, nil, order.Pending, "", now, now, 1)
	require.NoError(t, err)

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	require.NoError(t, err)

	inventory := new(MockInventoryClient)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, orderID).Return(empty, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, inventory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrEmptyOrder))
	inventory.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}
