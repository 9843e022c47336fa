package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"storefront_back_end/internal/models"
)

// Store is the persistence contract the HTTP layer talks to.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, upd models.ProductUpdate) (models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	AddCartLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (models.CartLine, error)
	ListCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)

	Checkout(ctx context.Context, userID uuid.UUID) (CheckoutResult, error)

	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// PostgresStore implements Store on top of a shared *sql.DB pool.
// Ordinary operations run on pooled connections; checkout acquires a
// transaction-scoped connection from the same pool and releases it on
// every exit path.
type PostgresStore struct {
	DB *sql.DB
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}
