package service

import (
	"context"

	"star-burger/internal/domain"
)

type Geocoder interface {
	FetchCoordinates(ctx context.Context, address string) (*domain.Coordinates, error)
}

type LocationRepository interface {
	GetByAddress(address string) (*domain.Location, error)
	GetByAddresses(addresses []string) (map[string]domain.Coordinates, error)
	Insert(address string, coords domain.Coordinates) error
}

type LocationCache interface {
	LocationKey(address string) string
	Get(ctx context.Context, key string) (*domain.Coordinates, error)
	Set(ctx context.Context, key string, coords domain.Coordinates) error
}

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(id int) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	DeleteRestaurant(id int) (int64, error)
}

type ProductRepository interface {
	CreateProduct(product *domain.Product) error
	ListAvailableProducts() ([]domain.Product, error)
	GetProductPrices(ids []int) (map[int]float64, error)
	ListMenuItems() ([]domain.MenuItem, error)
	SetMenuItem(restaurantID, productID int, availability bool) error
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(id int) (*domain.Order, error)
	ListOrders() ([]domain.Order, error)
	SaveQRCode(orderID int, qr []byte) error
	GetQRCode(orderID int) ([]byte, error)
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, msg domain.OrderEvent) error
}

type LocationServiceInterface interface {
	Resolve(ctx context.Context, address string) *domain.Coordinates
	KnownLocations(addresses []string) map[string]domain.Coordinates
}

type CatalogServiceInterface interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(id int) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(id int) error
	CreateProduct(product *domain.Product) error
	ListAvailableProducts() ([]domain.Product, error)
	SetMenuItem(restaurantID, productID int, availability bool) error
}

type OrderServiceInterface interface {
	Register(ctx context.Context, req RegisterOrderRequest) (*domain.Order, error)
	Get(orderID int) (*domain.Order, error)
	ListWithRestaurants(ctx context.Context) ([]domain.OrderWithRestaurants, error)
	QRCode(orderID int) ([]byte, error)
}

var (
	_ LocationServiceInterface = (*LocationService)(nil)
	_ CatalogServiceInterface  = (*CatalogService)(nil)
	_ OrderServiceInterface    = (*OrderService)(nil)
)
