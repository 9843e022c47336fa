package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/store"
)

// ListProducts handles GET /products (public). Served from the Redis
// cache when possible.
func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cache.GetProducts(ctx); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.Store.ListProducts(ctx)
	if err != nil {
		internalError(c, err)
		return
	}

	cache.SetProducts(ctx, products)
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id (public).
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var input struct {
		Name        *string          `json:"name"`
		Description string           `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		Stock       *int             `json:"stock"`
		ImageURL    string           `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.Name == nil || *input.Name == "" || input.Price == nil || input.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, price and stock are required"})
		return
	}
	if input.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be >= 0"})
		return
	}
	if *input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be >= 0"})
		return
	}

	product, err := h.Store.CreateProduct(c.Request.Context(), models.Product{
		Name:        *input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Stock:       *input.Stock,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		internalError(c, err)
		return
	}

	cache.InvalidateProducts(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{
		"message": "product created",
		"product": product,
	})
}

// UpdateProduct handles PUT /products/:id. Only the fields present in
// the body are changed.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var upd models.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if upd.Price != nil && upd.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be >= 0"})
		return
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be >= 0"})
		return
	}

	product, err := h.Store.UpdateProduct(c.Request.Context(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	cache.InvalidateProducts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": "product updated",
		"product": product,
	})
}

// DeleteProduct handles DELETE /products/:id.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	err = h.Store.DeleteProduct(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if errors.Is(err, store.ErrProductReferenced) {
		c.JSON(http.StatusConflict, gin.H{"error": "product is referenced by existing orders"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	cache.InvalidateProducts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message": "product deleted",
		"id":      id,
	})
}
