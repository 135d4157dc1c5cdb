package service

import (
	"context"
	"errors"
	"fmt"

	"star-burger/internal/domain"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// CatalogService manages restaurants, products and menu items. Restaurant
// geocoding happens right here on create and on address change, as an
// explicit call into the resolver rather than a side effect of saving.
type CatalogService struct {
	restaurants RestaurantRepository
	products    ProductRepository
	locations   LocationServiceInterface
}

func NewCatalogService(restaurants RestaurantRepository, products ProductRepository, locations LocationServiceInterface) *CatalogService {
	return &CatalogService{
		restaurants: restaurants,
		products:    products,
		locations:   locations,
	}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	if rest.Name == "" {
		return &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}
	rest.Coordinates = s.locations.Resolve(ctx, rest.Address)
	return s.restaurants.CreateRestaurant(rest)
}

func (s *CatalogService) ListRestaurants() ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants()
}

func (s *CatalogService) GetRestaurant(id int) (*domain.Restaurant, error) {
	rest, err := s.restaurants.GetRestaurant(id)
	if err != nil {
		return nil, ErrRestaurantNotFound
	}
	return rest, nil
}

func (s *CatalogService) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	existing, err := s.restaurants.GetRestaurant(rest.ID)
	if err != nil {
		return ErrRestaurantNotFound
	}

	if existing.Address != rest.Address {
		rest.Coordinates = s.locations.Resolve(ctx, rest.Address)
	} else {
		rest.Coordinates = existing.Coordinates
	}

	return s.restaurants.UpdateRestaurant(rest)
}

func (s *CatalogService) DeleteRestaurant(id int) error {
	affected, err := s.restaurants.DeleteRestaurant(id)
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	if affected == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

func (s *CatalogService) CreateProduct(product *domain.Product) error {
	if product.Name == "" {
		return &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}
	if product.Price < 0 {
		return &domain.ValidationError{Field: "price", Message: "must not be negative"}
	}
	return s.products.CreateProduct(product)
}

// ListAvailableProducts returns products sellable at one or more restaurants.
func (s *CatalogService) ListAvailableProducts() ([]domain.Product, error) {
	return s.products.ListAvailableProducts()
}

func (s *CatalogService) SetMenuItem(restaurantID, productID int, availability bool) error {
	if _, err := s.restaurants.GetRestaurant(restaurantID); err != nil {
		return ErrRestaurantNotFound
	}
	return s.products.SetMenuItem(restaurantID, productID, availability)
}
