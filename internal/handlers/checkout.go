package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/services"
	"storefront_back_end/internal/store"
)

// Checkout handles POST /checkout. The store does all the transactional
// work; this layer only maps the two business rejections to 400 and
// everything unexpected to 500.
func (h *Handler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.Store.Checkout(c.Request.Context(), userID)
	if err != nil {
		var stockErr *store.InsufficientStockError
		switch {
		case errors.Is(err, store.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      stockErr.Error(),
				"product_id": stockErr.ProductID,
			})
		default:
			internalError(c, err)
		}
		return
	}

	// Stock changed, the public listing cache is stale.
	cache.InvalidateProducts(c.Request.Context())

	if email := c.GetString("email"); email != "" {
		go func() {
			if err := services.SendOrderConfirmation(email, result); err != nil {
				log.Printf("order confirmation email for %s: %v", result.OrderID, err)
			}
		}()
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "checkout completed",
		"order_id":     result.OrderID,
		"total_amount": result.Total,
	})
}
