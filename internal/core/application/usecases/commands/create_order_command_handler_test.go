package commands_test

import (
	"context"
	"errors"
	"testing"

	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderRepository struct{ mock.Mock }

func (m *MockCreateOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockCreateOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCreateOrderRepository) UpdateIfStatus(_ context.Context, _ *order.Order, _ order.Status) error {
	return errors.New("not implemented in mock")
}
func (m *MockCreateOrderRepository) UpdateIfUnassigned(_ context.Context, _ *order.Order, _ order.Status) error {
	return errors.New("not implemented in mock")
}
func (m *MockCreateOrderRepository) UpdateIfCourier(_ context.Context, _ *order.Order, _ order.Status, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}
func (m *MockCreateOrderRepository) GetAllUnassignedInAcceptedStatus(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockCreateOrderUoW struct{ mock.Mock }

func (m *MockCreateOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCreateOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCreateOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// StubNotifier records fan-out invocations across the handler tests.
type StubNotifier struct {
	calls  int
	orders []*order.Order
}

func (s *StubNotifier) NotifyTransition(_ context.Context, o *order.Order, _ kernel.Actor) {
	s.calls++
	s.orders = append(s.orders, o)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyer := testBuyer(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), buyer,
		testProducts(), 30, order.PaymentTypeCOD)

	repo := new(MockCreateOrderRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier := new(StubNotifier)

	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.Equal(t, order.StatusPending, placed.Status())
	assert.Equal(t, 1, notifier.calls)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockCreateOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, new(StubNotifier))
	placed, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, placed)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), testBuyer(t),
		testProducts(), 30, order.PaymentTypeCOD)

	repo := new(MockCreateOrderRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	notifier := new(StubNotifier)

	h := commands.NewCreateOrderCommandHandler(factory, notifier)
	placed, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, placed)
	assert.Zero(t, notifier.calls)
}
