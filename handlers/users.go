package handlers

import (
	"net/http"

	"officepool/middleware"
	"officepool/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the current user's profile
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /me
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
