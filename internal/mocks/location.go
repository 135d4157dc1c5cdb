package mocks

import (
	"context"

	"star-burger/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// Geocoder is a mock for service.Geocoder.
type Geocoder struct {
	mock.Mock
}

func NewGeocoder(t testingT) *Geocoder {
	m := &Geocoder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *Geocoder) FetchCoordinates(ctx context.Context, address string) (*domain.Coordinates, error) {
	ret := _m.Called(ctx, address)

	var r0 *domain.Coordinates
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Coordinates)
	}
	return r0, ret.Error(1)
}

// LocationRepository is a mock for service.LocationRepository.
type LocationRepository struct {
	mock.Mock
}

func NewLocationRepository(t testingT) *LocationRepository {
	m := &LocationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *LocationRepository) GetByAddress(address string) (*domain.Location, error) {
	ret := _m.Called(address)

	var r0 *domain.Location
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Location)
	}
	return r0, ret.Error(1)
}

func (_m *LocationRepository) GetByAddresses(addresses []string) (map[string]domain.Coordinates, error) {
	ret := _m.Called(addresses)

	var r0 map[string]domain.Coordinates
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]domain.Coordinates)
	}
	return r0, ret.Error(1)
}

func (_m *LocationRepository) Insert(address string, coords domain.Coordinates) error {
	ret := _m.Called(address, coords)
	return ret.Error(0)
}

// LocationCache is a mock for service.LocationCache.
type LocationCache struct {
	mock.Mock
}

func NewLocationCache(t testingT) *LocationCache {
	m := &LocationCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *LocationCache) LocationKey(address string) string {
	ret := _m.Called(address)
	return ret.String(0)
}

func (_m *LocationCache) Get(ctx context.Context, key string) (*domain.Coordinates, error) {
	ret := _m.Called(ctx, key)

	var r0 *domain.Coordinates
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Coordinates)
	}
	return r0, ret.Error(1)
}

func (_m *LocationCache) Set(ctx context.Context, key string, coords domain.Coordinates) error {
	ret := _m.Called(ctx, key, coords)
	return ret.Error(0)
}

// LocationServiceInterface is a mock for service.LocationServiceInterface.
type LocationServiceInterface struct {
	mock.Mock
}

func NewLocationServiceInterface(t testingT) *LocationServiceInterface {
	m := &LocationServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *LocationServiceInterface) Resolve(ctx context.Context, address string) *domain.Coordinates {
	ret := _m.Called(ctx, address)

	var r0 *domain.Coordinates
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Coordinates)
	}
	return r0
}

func (_m *LocationServiceInterface) KnownLocations(addresses []string) map[string]domain.Coordinates {
	ret := _m.Called(addresses)

	var r0 map[string]domain.Coordinates
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]domain.Coordinates)
	}
	return r0
}
