package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"star-burger/internal/domain"

	"github.com/nyaruka/phonenumbers"
)

var (
	ErrProductNotFound = errors.New("product does not exist")
	ErrOrderNotFound   = errors.New("order not found")
)

type RegisterOrderRequest struct {
	Firstname   string              `json:"firstname"`
	Lastname    string              `json:"lastname"`
	Phonenumber string              `json:"phonenumber"`
	Address     string              `json:"address"`
	Products    []RegisterOrderItem `json:"products"`
}

type RegisterOrderItem struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

type OrderService struct {
	orders      OrderRepository
	products    ProductRepository
	restaurants RestaurantRepository
	locations   LocationServiceInterface
	publisher   OrderPublisher
	qrEncoder   QRGenerator
	phoneRegion string
}

func NewOrderService(
	orders OrderRepository,
	products ProductRepository,
	restaurants RestaurantRepository,
	locations LocationServiceInterface,
	publisher OrderPublisher,
	qrEncoder QRGenerator,
	phoneRegion string,
) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		restaurants: restaurants,
		locations:   locations,
		publisher:   publisher,
		qrEncoder:   qrEncoder,
		phoneRegion: phoneRegion,
	}
}

// Register validates the payload, stores the order and its items atomically
// with product prices snapshotted at this moment, then resolves the delivery
// address. Geocoding problems never fail the registration.
func (s *OrderService) Register(ctx context.Context, req RegisterOrderRequest) (*domain.Order, error) {
	if err := validateOrderRequest(req, s.phoneRegion); err != nil {
		return nil, err
	}

	productIDs := make([]int, 0, len(req.Products))
	for _, item := range req.Products {
		productIDs = append(productIDs, item.Product)
	}

	prices, err := s.products.GetProductPrices(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load product prices: %w", err)
	}

	order := &domain.Order{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Phonenumber: req.Phonenumber,
		Address:     req.Address,
		Status:      domain.OrderStatusNew,
	}

	var total float64
	for _, item := range req.Products {
		price, ok := prices[item.Product]
		if !ok {
			return nil, ErrProductNotFound
		}
		total += price * float64(item.Quantity)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.Product,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	if err := s.orders.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.locations.Resolve(ctx, order.Address)

	if s.publisher != nil {
		event := domain.OrderEvent{
			Type:      "order_registered",
			OrderID:   order.ID,
			Address:   order.Address,
			Total:     total,
			Timestamp: time.Now(),
		}
		if err := s.publisher.PublishOrder(ctx, event); err != nil {
			log.Printf("Warning: failed to publish order event for order %d: %v", order.ID, err)
		}
	}

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.ID); err == nil {
			if err := s.orders.SaveQRCode(order.ID, qr); err != nil {
				log.Printf("Warning: failed to store QR code for order %d: %v", order.ID, err)
			}
		}
	}

	return order, nil
}

func validateOrderRequest(req RegisterOrderRequest, phoneRegion string) error {
	required := []struct {
		field string
		value string
	}{
		{"firstname", req.Firstname},
		{"lastname", req.Lastname},
		{"phonenumber", req.Phonenumber},
		{"address", req.Address},
	}
	for _, item := range required {
		if item.value == "" {
			return &domain.ValidationError{Field: item.field, Message: "must not be empty"}
		}
	}

	number, err := phonenumbers.Parse(req.Phonenumber, phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return &domain.ValidationError{Field: "phonenumber", Message: "invalid phone number for region " + phoneRegion}
	}

	if len(req.Products) == 0 {
		return &domain.ValidationError{Field: "products", Message: "must not be empty"}
	}
	for _, item := range req.Products {
		if item.Quantity < 1 {
			return &domain.ValidationError{Field: "products", Message: "quantity must be at least 1"}
		}
	}

	return nil
}

func (s *OrderService) Get(orderID int) (*domain.Order, error) {
	return s.orders.GetOrder(orderID)
}

// ListWithRestaurants returns every order together with the restaurants that
// carry all of its products, ranked by distance to the delivery address. The
// availability index and the address locations are loaded once for the whole
// batch.
func (s *OrderService) ListWithRestaurants(ctx context.Context) ([]domain.OrderWithRestaurants, error) {
	orders, err := s.orders.ListOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	menuItems, err := s.products.ListMenuItems()
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	index := BuildAvailabilityIndex(menuItems)

	restaurants, err := s.restaurants.ListRestaurants()
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	restaurantsByID := make(map[int]domain.Restaurant, len(restaurants))
	for _, restaurant := range restaurants {
		restaurantsByID[restaurant.ID] = restaurant
	}

	addresses := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.Address]; ok {
			continue
		}
		seen[order.Address] = struct{}{}
		addresses = append(addresses, order.Address)
	}
	locations := s.locations.KnownLocations(addresses)

	result := make([]domain.OrderWithRestaurants, 0, len(orders))
	for _, order := range orders {
		productIDs := make([]int, 0, len(order.Items))
		for _, item := range order.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		matched := MatchRestaurants(productIDs, index)
		candidates := make([]domain.Restaurant, 0, len(matched))
		for id := range matched {
			if restaurant, ok := restaurantsByID[id]; ok {
				candidates = append(candidates, restaurant)
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].ID < candidates[j].ID
		})

		var orderCoords *domain.Coordinates
		if coords, ok := locations[order.Address]; ok {
			coords := coords
			orderCoords = &coords
		}

		result = append(result, domain.OrderWithRestaurants{
			Order:       order,
			Restaurants: RankByDistance(candidates, orderCoords),
		})
	}

	return result, nil
}

func (s *OrderService) QRCode(orderID int) ([]byte, error) {
	qr, err := s.orders.GetQRCode(orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		if regenerated, err := s.qrEncoder.Generate(orderID); err == nil {
			if err := s.orders.SaveQRCode(orderID, regenerated); err != nil {
				log.Printf("Warning: failed to cache regenerated QR code: %v", err)
			}
			return regenerated, nil
		}
	}
	return qr, nil
}
