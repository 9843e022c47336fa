package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront_back_end/internal/database"
	"storefront_back_end/internal/models"
)

const (
	productsKey     = "products:all"
	ProductCacheTTL = 10 * time.Minute
)

// GetProducts returns the cached public product listing, if present.
// Always a miss when Redis is not configured.
func GetProducts(ctx context.Context) ([]models.Product, bool) {
	if database.Redis == nil {
		return nil, false
	}

	data, err := database.Redis.Get(ctx, productsKey).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProducts caches the product listing. Best effort.
func SetProducts(ctx context.Context, products []models.Product) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productsKey, data, ProductCacheTTL)
}

// InvalidateProducts drops the cached listing. Called after any catalog
// write and after checkout, since checkout changes stock.
func InvalidateProducts(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, productsKey)
}
