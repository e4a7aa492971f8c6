package service_test

import (
	"context"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) Save(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductStore) FindByID(
	ctx context.Context, id int64,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockProductStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductStore) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStockGateway struct {
	mock.Mock
}

func (m *MockStockGateway) CreateStock(
	ctx context.Context, s domain.StockSnapshot,
) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStockGateway) UpdateStock(
	ctx context.Context, id int64, s domain.StockSnapshot,
) error {
	args := m.Called(ctx, id, s)
	return args.Error(0)
}

func (m *MockStockGateway) DeleteStock(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockGateway) GetStock(
	ctx context.Context, id int64,
) domain.StockResult {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.StockResult)
}

type MockEventsProducer struct {
	mock.Mock
}

func (m *MockEventsProducer) ProduceProductEvent(
	ctx context.Context, evt domain.ProductEvent,
) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}
