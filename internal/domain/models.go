package domain

import "time"

// Coordinates is a named latitude/longitude pair. The geocoding service
// returns positions as "lon lat"; conversion into this type happens at the
// geocoder boundary so the axis order is never ambiguous elsewhere.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Restaurant struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address"`
	ContactPhone string       `json:"contact_phone"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type ProductCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	Price         float64          `json:"price"`
	SpecialStatus bool             `json:"special_status"`
	Description   string           `json:"description"`
	ImageURL      string           `json:"image"`
	Category      *ProductCategory `json:"category"`
}

// MenuItem links a product to a restaurant that sells it. A product is
// sellable at a restaurant only if a MenuItem exists and Availability is true.
// At most one MenuItem exists per (restaurant, product) pair.
type MenuItem struct {
	ID           int  `json:"id"`
	RestaurantID int  `json:"restaurant_id"`
	ProductID    int  `json:"product_id"`
	Availability bool `json:"availability"`
}

// Location is a persisted geocoding result keyed by the exact address text.
type Location struct {
	ID          int
	Address     string
	Coordinates Coordinates
	CreatedAt   time.Time
}

// RestaurantDistance pairs a candidate restaurant with its distance to the
// order, in kilometers. Distance is nil when either side has no coordinates.
type RestaurantDistance struct {
	Restaurant Restaurant `json:"restaurant"`
	Distance   *float64   `json:"distance,omitempty"`
}
