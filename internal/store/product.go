package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront_back_end/internal/models"
)

func (s *PostgresStore) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	p.ID = uuid.New()
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO products (id, name, description, price, stock, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL,
	).Scan(&p.CreatedAt)
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var p models.Product
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, description, price, stock, image_url, created_at FROM products WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, description, price, stock, image_url, created_at FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies the non-nil fields of upd to the product.
func (s *PostgresStore) UpdateProduct(ctx context.Context, id uuid.UUID, upd models.ProductUpdate) (models.Product, error) {
	sets := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Name != nil {
		sets = append(sets, "name = "+arg(*upd.Name))
	}
	if upd.Description != nil {
		sets = append(sets, "description = "+arg(*upd.Description))
	}
	if upd.Price != nil {
		sets = append(sets, "price = "+arg(*upd.Price))
	}
	if upd.Stock != nil {
		sets = append(sets, "stock = "+arg(*upd.Stock))
	}
	if upd.ImageURL != nil {
		sets = append(sets, "image_url = "+arg(*upd.ImageURL))
	}
	if len(sets) == 0 {
		return s.GetProduct(ctx, id)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = %s RETURNING id, name, description, price, stock, image_url, created_at`,
		strings.Join(sets, ", "), arg(id),
	)

	var p models.Product
	err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		// The FK from order_items protects order history.
		if isForeignKeyViolation(err) {
			return ErrProductReferenced
		}
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
