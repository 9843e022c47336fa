package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront_back_end/internal/models"
)

// AddCartLine inserts an unassigned order_items row for the user,
// snapshotting the product's current price in the same statement so the
// read and the insert cannot interleave with a price update.
func (s *PostgresStore) AddCartLine(ctx context.Context, userID, productID uuid.UUID, quantity int) (models.CartLine, error) {
	line := models.CartLine{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
	}

	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO order_items (id, user_id, product_id, quantity, price)
		 SELECT $1, $2, p.id, $3, p.price FROM products p WHERE p.id = $4
		 RETURNING price, created_at`,
		line.ID, userID, quantity, productID,
	).Scan(&line.Price, &line.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CartLine{}, ErrNotFound
	}
	if err != nil {
		return models.CartLine{}, fmt.Errorf("add cart line: %w", err)
	}
	return line, nil
}

// ListCart returns the user's unassigned lines joined with the current
// product name and image for display.
func (s *PostgresStore) ListCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT oi.id, oi.product_id, p.name, p.image_url, oi.quantity, oi.price, oi.created_at
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.user_id = $1 AND oi.order_id IS NULL
		 ORDER BY oi.created_at, oi.id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.ImageURL, &l.Quantity, &l.Price, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return lines, nil
}
