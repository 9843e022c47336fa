package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOrders handles GET /orders, newest-first with nested items.
func (h *Handler) GetOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.Store.ListOrders(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
