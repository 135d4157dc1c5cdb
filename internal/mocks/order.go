package mocks

import (
	"context"

	"star-burger/internal/domain"
	"star-burger/internal/service"

	"github.com/stretchr/testify/mock"
)

// OrderRepository is a mock for service.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderRepository) CreateOrder(order *domain.Order) error {
	ret := _m.Called(order)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(id int) (*domain.Order, error) {
	ret := _m.Called(id)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrders() ([]domain.Order, error) {
	ret := _m.Called()

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) SaveQRCode(orderID int, qr []byte) error {
	ret := _m.Called(orderID, qr)
	return ret.Error(0)
}

func (_m *OrderRepository) GetQRCode(orderID int) ([]byte, error) {
	ret := _m.Called(orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// OrderPublisher is a mock for service.OrderPublisher.
type OrderPublisher struct {
	mock.Mock
}

func NewOrderPublisher(t testingT) *OrderPublisher {
	m := &OrderPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderPublisher) PublishOrder(ctx context.Context, msg domain.OrderEvent) error {
	ret := _m.Called(ctx, msg)
	return ret.Error(0)
}

// QRGenerator is a mock for service.QRGenerator.
type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRGenerator) Generate(orderID int) ([]byte, error) {
	ret := _m.Called(orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// OrderServiceInterface is a mock for service.OrderServiceInterface.
type OrderServiceInterface struct {
	mock.Mock
}

func NewOrderServiceInterface(t testingT) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderServiceInterface) Register(ctx context.Context, req service.RegisterOrderRequest) (*domain.Order, error) {
	ret := _m.Called(ctx, req)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) Get(orderID int) (*domain.Order, error) {
	ret := _m.Called(orderID)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) ListWithRestaurants(ctx context.Context) ([]domain.OrderWithRestaurants, error) {
	ret := _m.Called(ctx)

	var r0 []domain.OrderWithRestaurants
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderWithRestaurants)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) QRCode(orderID int) ([]byte, error) {
	ret := _m.Called(orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}
