package mocks

import (
	"context"

	"star-burger/internal/domain"

	"github.com/stretchr/testify/mock"
)

// RestaurantRepository is a mock for service.RestaurantRepository.
type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	ret := _m.Called(rest)
	return ret.Error(0)
}

func (_m *RestaurantRepository) ListRestaurants() ([]domain.Restaurant, error) {
	ret := _m.Called()

	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	ret := _m.Called(id)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *RestaurantRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	ret := _m.Called(rest)
	return ret.Error(0)
}

func (_m *RestaurantRepository) DeleteRestaurant(id int) (int64, error) {
	ret := _m.Called(id)
	return ret.Get(0).(int64), ret.Error(1)
}

// ProductRepository is a mock for service.ProductRepository.
type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t testingT) *ProductRepository {
	m := &ProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ProductRepository) CreateProduct(product *domain.Product) error {
	ret := _m.Called(product)
	return ret.Error(0)
}

func (_m *ProductRepository) ListAvailableProducts() ([]domain.Product, error) {
	ret := _m.Called()

	var r0 []domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *ProductRepository) GetProductPrices(ids []int) (map[int]float64, error) {
	ret := _m.Called(ids)

	var r0 map[int]float64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[int]float64)
	}
	return r0, ret.Error(1)
}

func (_m *ProductRepository) ListMenuItems() ([]domain.MenuItem, error) {
	ret := _m.Called()

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *ProductRepository) SetMenuItem(restaurantID, productID int, availability bool) error {
	ret := _m.Called(restaurantID, productID, availability)
	return ret.Error(0)
}

// CatalogServiceInterface is a mock for service.CatalogServiceInterface.
type CatalogServiceInterface struct {
	mock.Mock
}

func NewCatalogServiceInterface(t testingT) *CatalogServiceInterface {
	m := &CatalogServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CatalogServiceInterface) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)
	return ret.Error(0)
}

func (_m *CatalogServiceInterface) ListRestaurants() ([]domain.Restaurant, error) {
	ret := _m.Called()

	var r0 []domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) GetRestaurant(id int) (*domain.Restaurant, error) {
	ret := _m.Called(id)

	var r0 *domain.Restaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Restaurant)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	ret := _m.Called(ctx, rest)
	return ret.Error(0)
}

func (_m *CatalogServiceInterface) DeleteRestaurant(id int) error {
	ret := _m.Called(id)
	return ret.Error(0)
}

func (_m *CatalogServiceInterface) CreateProduct(product *domain.Product) error {
	ret := _m.Called(product)
	return ret.Error(0)
}

func (_m *CatalogServiceInterface) ListAvailableProducts() ([]domain.Product, error) {
	ret := _m.Called()

	var r0 []domain.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Product)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogServiceInterface) SetMenuItem(restaurantID, productID int, availability bool) error {
	ret := _m.Called(restaurantID, productID, availability)
	return ret.Error(0)
}
