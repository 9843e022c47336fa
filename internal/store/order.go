package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront_back_end/internal/models"
)

// ListOrders returns the user's orders newest-first, each with its items
// joined with the current product name.
func (s *PostgresStore) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT o.id, o.total_amount, o.status, o.created_at,
		        oi.product_id, p.name, oi.quantity, oi.price
		 FROM orders o
		 JOIN order_items oi ON oi.order_id = o.id
		 JOIN products p ON p.id = oi.product_id
		 WHERE o.user_id = $1
		 ORDER BY o.created_at DESC, o.id, oi.created_at, oi.id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			o    models.Order
			item models.OrderItem
		)
		if err := rows.Scan(&o.ID, &o.TotalAmount, &o.Status, &o.CreatedAt,
			&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		i, ok := index[o.ID]
		if !ok {
			o.UserID = userID
			orders = append(orders, o)
			i = len(orders) - 1
			index[o.ID] = i
		}
		orders[i].Items = append(orders[i].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
