package domain

import "time"

// OrderEvent is published to Kafka when an order is registered.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Address   string    `json:"address"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}
