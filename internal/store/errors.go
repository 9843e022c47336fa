package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registration hits the unique
	// constraint on users.email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrEmptyCart is the business rejection for a checkout with no
	// unassigned cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrProductReferenced is returned when a product cannot be deleted
	// because order items still point at it.
	ErrProductReferenced = errors.New("product is referenced by existing orders")
)

// InsufficientStockError is the business rejection for a cart line whose
// quantity exceeds the product's remaining stock at checkout time.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
