package storage

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"star-burger/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func newPostgresRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_CreateOrder_Commits(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	order := &domain.Order{
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Phonenumber: "+79991234567",
		Address:     "Moscow, Tverskaya 1",
		Status:      domain.OrderStatusNew,
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 2, Price: 250.50},
			{ProductID: 20, Quantity: 1, Price: 99.90},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs("Ivan", "Petrov", "+79991234567", "Moscow, Tverskaya 1", domain.OrderStatusNew).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, createdAt))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(42, 10, 2, 250.50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(42, 20, 1, 99.90).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	err := repo.CreateOrder(order)

	assert.NoError(t, err)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, 42, order.Items[0].OrderID)
	assert.Equal(t, 1, order.Items[0].ID)
}

func TestPostgresRepository_CreateOrder_RollsBackOnItemFailure(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	order := &domain.Order{
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Phonenumber: "+79991234567",
		Address:     "Moscow, Tverskaya 1",
		Status:      domain.OrderStatusNew,
		Items: []domain.OrderItem{
			{ProductID: 10, Quantity: 2, Price: 250.50},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateOrder(order)
	assert.Error(t, err)
}

func TestPostgresRepository_GetProductPrices(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, price FROM products WHERE id = ANY($1)")).
		WithArgs(pq.Array([]int64{10, 20, 99})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).
			AddRow(10, 250.50).
			AddRow(20, 99.90))

	prices, err := repo.GetProductPrices([]int{10, 20, 99})

	assert.NoError(t, err)
	// missing product 99 is simply absent, the caller decides what that means
	assert.Len(t, prices, 2)
	assert.Equal(t, 250.50, prices[10])
}

func TestPostgresRepository_ListOrders_GroupsItems(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "firstname", "lastname", "phonenumber", "address", "status",
		"comment", "payment", "created_at", "called_at", "delivered_at",
		"item_id", "product_id", "quantity", "price",
	}
	mock.ExpectQuery("SELECT o.id, o.firstname").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Ivan", "Petrov", "+79991234567", "Moscow, Tverskaya 1", "new", "", "", createdAt, nil, nil, 11, 10, 2, 250.50).
			AddRow(1, "Ivan", "Petrov", "+79991234567", "Moscow, Tverskaya 1", "new", "", "", createdAt, nil, nil, 12, 20, 1, 99.90).
			AddRow(2, "Anna", "Orlova", "+79997654321", "Moscow, Arbat 10", "new", "", "", createdAt, nil, nil, 13, 10, 1, 250.50))

	orders, err := repo.ListOrders()

	assert.NoError(t, err)
	if assert.Len(t, orders, 2) {
		assert.Len(t, orders[0].Items, 2)
		assert.Len(t, orders[1].Items, 1)
		assert.Equal(t, 1, orders[0].Items[0].OrderID)
	}
}

func TestPostgresRepository_SetMenuItem_Upserts(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (restaurant_id, product_id) DO UPDATE")).
		WithArgs(3, 10, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetMenuItem(3, 10, true))
}

func TestPostgresRepository_DeleteRestaurant(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM restaurants WHERE id=$1")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.DeleteRestaurant(99)

	assert.NoError(t, err)
	assert.Zero(t, affected)
}
