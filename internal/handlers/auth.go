package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/store"
	"storefront_back_end/internal/utils"
)

// dummyPasswordHash is compared against when the email is not
// registered, so a login attempt pays the bcrypt cost either way and
// response timing does not reveal which emails exist.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register handles POST /register.
func (h *Handler) Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		internalError(c, err)
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), input.Email, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.Store.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			internalError(c, err)
			return
		}
		utils.VerifyPassword(input.Password, dummyPasswordHash)
		middleware.RecordLoginFailure(ctx, input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if !utils.VerifyPassword(input.Password, user.PasswordHash) {
		middleware.RecordLoginFailure(ctx, input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		internalError(c, err)
		return
	}

	middleware.ResetLoginAttempts(ctx, input.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
	})
}

// Profile handles GET /profile.
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile",
		"user": gin.H{
			"userId": userID,
			"email":  c.GetString("email"),
		},
	})
}
