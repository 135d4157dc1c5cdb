package storage

import (
	"database/sql"
	"fmt"

	"star-burger/internal/domain"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			contact_phone TEXT NOT NULL DEFAULT '',
			lat DOUBLE PRECISION,
			lon DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS product_categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category_id INTEGER REFERENCES product_categories(id) ON DELETE SET NULL,
			price NUMERIC(8,2) NOT NULL CHECK (price >= 0),
			image_url TEXT NOT NULL DEFAULT '',
			special_status BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			availability BOOLEAN NOT NULL DEFAULT TRUE,
			UNIQUE (restaurant_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			firstname TEXT NOT NULL,
			lastname TEXT NOT NULL,
			phonenumber TEXT NOT NULL,
			address TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'new',
			comment TEXT NOT NULL DEFAULT '',
			payment TEXT NOT NULL DEFAULT '',
			qr_code BYTEA,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			called_at TIMESTAMPTZ,
			delivered_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			price NUMERIC(8,2) NOT NULL CHECK (price >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id SERIAL PRIMARY KEY,
			address TEXT NOT NULL UNIQUE,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func coordinatesFrom(lat, lon sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
}

func coordinateArgs(coords *domain.Coordinates) (lat, lon interface{}) {
	if coords == nil {
		return nil, nil
	}
	return coords.Lat, coords.Lon
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	lat, lon := coordinateArgs(rest.Coordinates)
	return r.DB.QueryRow(
		"INSERT INTO restaurants (name, address, contact_phone, lat, lon) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		rest.Name, rest.Address, rest.ContactPhone, lat, lon,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(address, ''), COALESCE(contact_phone, ''), lat, lon, created_at
		FROM restaurants
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ContactPhone, &lat, &lon, &rest.CreatedAt); err != nil {
			continue
		}
		rest.Coordinates = coordinatesFrom(lat, lon)
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var lat, lon sql.NullFloat64
	err := r.DB.QueryRow(`
		SELECT id, name, COALESCE(address, ''), COALESCE(contact_phone, ''), lat, lon, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.ContactPhone, &lat, &lon, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	rest.Coordinates = coordinatesFrom(lat, lon)
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	lat, lon := coordinateArgs(rest.Coordinates)
	return r.DB.QueryRow(
		"UPDATE restaurants SET name=$1, address=$2, contact_phone=$3, lat=$4, lon=$5 WHERE id=$6 RETURNING created_at",
		rest.Name, rest.Address, rest.ContactPhone, lat, lon, rest.ID).
		Scan(&rest.CreatedAt)
}

func (r *PostgresRepository) DeleteRestaurant(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateProduct(product *domain.Product) error {
	var categoryID interface{}
	if product.Category != nil {
		categoryID = product.Category.ID
	}
	return r.DB.QueryRow(
		"INSERT INTO products (name, category_id, price, image_url, special_status, description) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		product.Name, categoryID, product.Price, product.ImageURL, product.SpecialStatus, product.Description,
	).Scan(&product.ID)
}

func (r *PostgresRepository) ListAvailableProducts() ([]domain.Product, error) {
	rows, err := r.DB.Query(`
		SELECT DISTINCT p.id, p.name, p.price, p.special_status, COALESCE(p.description, ''),
			COALESCE(p.image_url, ''), c.id, c.name
		FROM products p
		JOIN menu_items mi ON mi.product_id = p.id AND mi.availability = TRUE
		LEFT JOIN product_categories c ON c.id = p.category_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		var categoryID sql.NullInt64
		var categoryName sql.NullString
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.SpecialStatus,
			&product.Description, &product.ImageURL, &categoryID, &categoryName); err != nil {
			continue
		}
		if categoryID.Valid {
			product.Category = &domain.ProductCategory{ID: int(categoryID.Int64), Name: categoryName.String}
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *PostgresRepository) GetProductPrices(ids []int) (map[int]float64, error) {
	idArgs := make([]int64, 0, len(ids))
	for _, id := range ids {
		idArgs = append(idArgs, int64(id))
	}

	rows, err := r.DB.Query("SELECT id, price FROM products WHERE id = ANY($1)", pq.Array(idArgs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int]float64, len(ids))
	for rows.Next() {
		var id int
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			continue
		}
		prices[id] = price
	}
	return prices, nil
}

func (r *PostgresRepository) ListMenuItems() ([]domain.MenuItem, error) {
	rows, err := r.DB.Query("SELECT id, restaurant_id, product_id, availability FROM menu_items")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.ProductID, &item.Availability); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) SetMenuItem(restaurantID, productID int, availability bool) error {
	_, err := r.DB.Exec(`
		INSERT INTO menu_items (restaurant_id, product_id, availability)
		VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id) DO UPDATE SET availability = EXCLUDED.availability`,
		restaurantID, productID, availability)
	return err
}

// CreateOrder writes the order row and all of its items in one transaction.
// A failure on any item rolls back the whole order.
func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (firstname, lastname, phonenumber, address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, order.Firstname, order.Lastname, order.Phonenumber, order.Address, order.Status).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(`
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, error) {
	var order domain.Order
	if err := r.DB.QueryRow(`
		SELECT id, firstname, lastname, phonenumber, address, status, COALESCE(comment, ''),
			COALESCE(payment, ''), created_at, called_at, delivered_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.Firstname, &order.Lastname, &order.Phonenumber, &order.Address,
		&order.Status, &order.Comment, &order.Payment, &order.CreatedAt, &order.CalledAt, &order.DeliveredAt); err != nil {
		return nil, err
	}

	items, err := r.listOrderItems(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) listOrderItems(orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) ListOrders() ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT o.id, o.firstname, o.lastname, o.phonenumber, o.address, o.status,
			COALESCE(o.comment, ''), COALESCE(o.payment, ''), o.created_at, o.called_at, o.delivered_at,
			oi.id, oi.product_id, oi.quantity, oi.price
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		ORDER BY o.id, oi.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var current *domain.Order
	for rows.Next() {
		var order domain.Order
		var item domain.OrderItem
		if err := rows.Scan(&order.ID, &order.Firstname, &order.Lastname, &order.Phonenumber, &order.Address,
			&order.Status, &order.Comment, &order.Payment, &order.CreatedAt, &order.CalledAt, &order.DeliveredAt,
			&item.ID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			continue
		}
		item.OrderID = order.ID

		if current == nil || current.ID != order.ID {
			orders = append(orders, order)
			current = &orders[len(orders)-1]
		}
		current.Items = append(current.Items, item)
	}
	return orders, nil
}

func (r *PostgresRepository) SaveQRCode(orderID int, qr []byte) error {
	_, err := r.DB.Exec("UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(orderID int) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRow("SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}
