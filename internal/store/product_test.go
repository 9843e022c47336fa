package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

func TestCreateProduct(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(sqlmock.AnyArg(), "Keyboard", "mechanical", decimal.RequireFromString("25.50"), 100, "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	p, err := s.CreateProduct(context.Background(), models.Product{
		Name:        "Keyboard",
		Description: "mechanical",
		Price:       decimal.RequireFromString("25.50"),
		Stock:       100,
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if p.ID == (uuid.UUID{}) {
		t.Fatal("expected generated product id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, name, description, price, stock, image_url, created_at FROM products`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url", "created_at"}))

	_, err := s.GetProduct(context.Background(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	id := uuid.New()
	newPrice := decimal.RequireFromString("19.99")
	newStock := 7

	// Only price and stock present: the SET clause must contain exactly
	// those two columns.
	mock.ExpectQuery(`UPDATE products SET price = \$1, stock = \$2 WHERE id = \$3`).
		WithArgs(newPrice, newStock, id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url", "created_at"}).
			AddRow(id.String(), "Keyboard", "", "19.99", 7, "", time.Now()))

	p, err := s.UpdateProduct(context.Background(), id, models.ProductUpdate{
		Price: &newPrice,
		Stock: &newStock,
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if p.Stock != 7 || !p.Price.Equal(newPrice) {
		t.Fatalf("unexpected product: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	id := uuid.New()
	name := "Gone"
	mock.ExpectQuery(`UPDATE products SET name = \$1 WHERE id = \$2`).
		WithArgs(name, id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url", "created_at"}))

	_, err := s.UpdateProduct(context.Background(), id, models.ProductUpdate{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	id := uuid.New()

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := s.DeleteProduct(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := s.DeleteProduct(context.Background(), id); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Deleting a product some order item points at hits the FK and must
// come back as ErrProductReferenced, not as an opaque failure.
func TestDeleteProduct_ReferencedByOrders(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	id := uuid.New()

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(&pq.Error{Code: "23503"})

	if err := s.DeleteProduct(context.Background(), id); !errors.Is(err, ErrProductReferenced) {
		t.Fatalf("expected ErrProductReferenced, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListProducts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	s := New(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url", "created_at"}).
		AddRow(uuid.New().String(), "A", "", "1.00", 1, "", time.Now()).
		AddRow(uuid.New().String(), "B", "", "2.00", 2, "", time.Now())
	mock.ExpectQuery(`SELECT id, name, description, price, stock, image_url, created_at FROM products ORDER BY`).
		WillReturnRows(rows)

	products, err := s.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 2 || products[0].Name != "A" {
		t.Fatalf("unexpected products: %+v", products)
	}
}
