package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

// CheckoutResult is what a successful checkout hands back to the caller.
type CheckoutResult struct {
	OrderID   uuid.UUID
	Total     decimal.Decimal
	CreatedAt time.Time
	Items     []models.OrderItem
}

// Checkout converts all of the user's unassigned cart lines into exactly
// one order, or rejects with no persisted side effects. The whole
// operation runs in a single transaction: the initial SELECT takes row
// locks (FOR UPDATE) on the cart lines and their products, so the stock
// check and the later decrement are serialized against any concurrent
// checkout touching the same products. Locks are acquired in product id
// order to keep concurrent checkouts from deadlocking.
//
// Business rejections (ErrEmptyCart, *InsufficientStockError) roll back
// and are returned as-is; anything else rolls back and comes out wrapped.
func (s *PostgresStore) Checkout(ctx context.Context, userID uuid.UUID) (CheckoutResult, error) {
	var res CheckoutResult

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin checkout tx: %w", err)
	}
	// No-op once Commit has succeeded; undoes everything otherwise,
	// including on context cancellation mid-transaction.
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx,
		`SELECT oi.id, oi.product_id, oi.quantity, oi.price, p.name, p.stock
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.user_id = $1 AND oi.order_id IS NULL
		 ORDER BY p.id, oi.id
		 FOR UPDATE`,
		userID)
	if err != nil {
		return res, fmt.Errorf("read cart: %w", err)
	}

	type line struct {
		id        uuid.UUID
		productID uuid.UUID
		quantity  int
		price     decimal.Decimal
		name      string
		stock     int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.id, &l.productID, &l.quantity, &l.price, &l.name, &l.stock); err != nil {
			rows.Close()
			return res, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("read cart: %w", err)
	}

	if len(lines) == 0 {
		return res, ErrEmptyCart
	}

	// Verify stock line by line, accumulating per product so several
	// lines for the same product cannot jointly drive stock negative.
	// The scan order is deterministic, so the reported violation is too.
	total := decimal.Zero
	needed := map[uuid.UUID]int{}
	var productOrder []uuid.UUID
	for _, l := range lines {
		if _, seen := needed[l.productID]; !seen {
			productOrder = append(productOrder, l.productID)
		}
		needed[l.productID] += l.quantity
		if needed[l.productID] > l.stock {
			return res, &InsufficientStockError{ProductID: l.productID}
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}

	orderID := uuid.New()
	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (id, user_id, total_amount, status) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		orderID, userID, total, models.OrderStatusCompleted,
	).Scan(&createdAt)
	if err != nil {
		return res, fmt.Errorf("insert order: %w", err)
	}

	// Bind exactly the lines read under lock; this is what turns them
	// into order items, no rows are copied. A line added to the cart
	// after the locked read stays unbound for the next checkout.
	lineIDs := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		lineIDs[i] = l.id
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE order_items SET order_id = $1 WHERE id = ANY($2)`,
		orderID, pq.Array(lineIDs),
	); err != nil {
		return res, fmt.Errorf("bind cart lines: %w", err)
	}

	for _, pid := range productOrder {
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2`,
			needed[pid], pid,
		); err != nil {
			return res, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit checkout: %w", err)
	}

	res.OrderID = orderID
	res.Total = total
	res.CreatedAt = createdAt
	res.Items = make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		res.Items = append(res.Items, models.OrderItem{
			ProductID:   l.productID,
			ProductName: l.name,
			Quantity:    l.quantity,
			Price:       l.price,
		})
	}
	return res, nil
}
