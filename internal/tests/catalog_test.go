package tests

import (
	"context"
	"testing"

	"star-burger/internal/domain"
	"star-burger/internal/mocks"
	"star-burger/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogService(t *testing.T) (*service.CatalogService, *mocks.RestaurantRepository, *mocks.ProductRepository, *mocks.LocationServiceInterface) {
	restaurants := mocks.NewRestaurantRepository(t)
	products := mocks.NewProductRepository(t)
	locations := mocks.NewLocationServiceInterface(t)
	return service.NewCatalogService(restaurants, products, locations), restaurants, products, locations
}

func TestCatalogService_CreateRestaurant_ResolvesAddress(t *testing.T) {
	svc, restaurants, _, locations := newCatalogService(t)
	ctx := context.Background()

	resolved := &domain.Coordinates{Lat: 55.749, Lon: 37.591}
	locations.On("Resolve", ctx, "Moscow, Arbat 10").Return(resolved).Once()
	restaurants.On("CreateRestaurant", mock.MatchedBy(func(rest *domain.Restaurant) bool {
		return rest.Coordinates == resolved
	})).Return(nil).Once()

	rest := &domain.Restaurant{Name: "Star Burger Arbat", Address: "Moscow, Arbat 10"}
	assert.NoError(t, svc.CreateRestaurant(ctx, rest))
}

func TestCatalogService_CreateRestaurant_GeocoderDownLeavesNilCoordinates(t *testing.T) {
	svc, restaurants, _, locations := newCatalogService(t)
	ctx := context.Background()

	locations.On("Resolve", ctx, "unreachable").Return(nil).Once()
	restaurants.On("CreateRestaurant", mock.MatchedBy(func(rest *domain.Restaurant) bool {
		return rest.Coordinates == nil
	})).Return(nil).Once()

	rest := &domain.Restaurant{Name: "No Map", Address: "unreachable"}
	assert.NoError(t, svc.CreateRestaurant(ctx, rest))
}

func TestCatalogService_CreateRestaurant_NameRequired(t *testing.T) {
	svc, _, _, _ := newCatalogService(t)

	err := svc.CreateRestaurant(context.Background(), &domain.Restaurant{Address: "somewhere"})

	var validationErr *domain.ValidationError
	if assert.ErrorAs(t, err, &validationErr) {
		assert.Equal(t, "name", validationErr.Field)
	}
}

func TestCatalogService_UpdateRestaurant_ReResolvesOnAddressChange(t *testing.T) {
	svc, restaurants, _, locations := newCatalogService(t)
	ctx := context.Background()

	existing := &domain.Restaurant{
		ID:          5,
		Name:        "Star Burger Arbat",
		Address:     "Moscow, Arbat 10",
		Coordinates: &domain.Coordinates{Lat: 55.749, Lon: 37.591},
	}
	moved := &domain.Coordinates{Lat: 55.76, Lon: 37.6}

	restaurants.On("GetRestaurant", 5).Return(existing, nil).Once()
	locations.On("Resolve", ctx, "Moscow, Tverskaya 1").Return(moved).Once()
	restaurants.On("UpdateRestaurant", mock.MatchedBy(func(rest *domain.Restaurant) bool {
		return rest.Coordinates == moved
	})).Return(nil).Once()

	updated := &domain.Restaurant{ID: 5, Name: "Star Burger Arbat", Address: "Moscow, Tverskaya 1"}
	assert.NoError(t, svc.UpdateRestaurant(ctx, updated))
}

func TestCatalogService_UpdateRestaurant_KeepsCoordinatesWhenAddressUnchanged(t *testing.T) {
	svc, restaurants, _, locations := newCatalogService(t)
	ctx := context.Background()

	existing := &domain.Restaurant{
		ID:          5,
		Name:        "Star Burger Arbat",
		Address:     "Moscow, Arbat 10",
		Coordinates: &domain.Coordinates{Lat: 55.749, Lon: 37.591},
	}

	restaurants.On("GetRestaurant", 5).Return(existing, nil).Once()
	restaurants.On("UpdateRestaurant", mock.MatchedBy(func(rest *domain.Restaurant) bool {
		return rest.Coordinates == existing.Coordinates
	})).Return(nil).Once()

	updated := &domain.Restaurant{ID: 5, Name: "Renamed", Address: "Moscow, Arbat 10"}
	assert.NoError(t, svc.UpdateRestaurant(ctx, updated))

	locations.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteRestaurant_NotFound(t *testing.T) {
	svc, restaurants, _, _ := newCatalogService(t)

	restaurants.On("DeleteRestaurant", 99).Return(int64(0), nil).Once()

	assert.ErrorIs(t, svc.DeleteRestaurant(99), service.ErrRestaurantNotFound)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name          string
		product       domain.Product
		expectedField string
	}{
		{
			name:          "empty name",
			product:       domain.Product{Price: 100},
			expectedField: "name",
		},
		{
			name:          "negative price",
			product:       domain.Product{Name: "Burger", Price: -1},
			expectedField: "price",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, _, _, _ := newCatalogService(t)

			err := svc.CreateProduct(&testCase.product)

			var validationErr *domain.ValidationError
			if assert.ErrorAs(t, err, &validationErr) {
				assert.Equal(t, testCase.expectedField, validationErr.Field)
			}
		})
	}
}

func TestCatalogService_SetMenuItem_UnknownRestaurant(t *testing.T) {
	svc, restaurants, products, _ := newCatalogService(t)

	restaurants.On("GetRestaurant", 99).Return(nil, service.ErrRestaurantNotFound).Once()

	assert.ErrorIs(t, svc.SetMenuItem(99, 10, true), service.ErrRestaurantNotFound)
	products.AssertNotCalled(t, "SetMenuItem", mock.Anything, mock.Anything, mock.Anything)
}
