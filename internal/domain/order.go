package domain

import "time"

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

type Order struct {
	ID          int           `json:"id"`
	Firstname   string        `json:"firstname"`
	Lastname    string        `json:"lastname"`
	Phonenumber string        `json:"phonenumber"`
	Address     string        `json:"address"`
	Status      OrderStatus   `json:"status"`
	Comment     string        `json:"comment,omitempty"`
	Payment     PaymentMethod `json:"payment,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CalledAt    *time.Time    `json:"called_at,omitempty"`
	DeliveredAt *time.Time    `json:"delivered_at,omitempty"`
	Items       []OrderItem   `json:"products"`
}

// OrderItem records one product line of an order. Price is a snapshot of the
// product price at registration time and is never recomputed afterwards.
type OrderItem struct {
	ID        int     `json:"-"`
	OrderID   int     `json:"-"`
	ProductID int     `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderWithRestaurants is an order annotated with the restaurants able to
// fulfil every product on it, nearest first.
type OrderWithRestaurants struct {
	Order
	Restaurants []RestaurantDistance `json:"restaurants"`
}
