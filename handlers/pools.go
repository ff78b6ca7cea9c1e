package handlers

import (
	"net/http"

	"officepool/middleware"
	"officepool/service"

	"github.com/gin-gonic/gin"
)

// PoolHandler serves pool creation, joining and pool queries
type PoolHandler struct {
	pools      service.PoolService
	membership service.MembershipService
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(pools service.PoolService, membership service.MembershipService) *PoolHandler {
	return &PoolHandler{
		pools:      pools,
		membership: membership,
	}
}

type createPoolRequest struct {
	Title string `json:"title"`
}

type joinPoolRequest struct {
	Code string `json:"code"`
}

// Count handles GET /pools/count
func (h *PoolHandler) Count(c *gin.Context) {
	count, err := h.pools.CountPools(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Create handles POST /pools. Authentication is optional.
func (h *PoolHandler) Create(c *gin.Context) {
	var req createPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errInvalidBody)
		return
	}

	var creatorID *string
	if identity, ok := middleware.CurrentIdentity(c); ok {
		creatorID = &identity.UserID
	}

	pool, err := h.pools.CreatePool(c.Request.Context(), req.Title, creatorID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": pool.Code})
}

// Join handles POST /pools/join
func (h *PoolHandler) Join(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
		return
	}

	var req joinPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, errInvalidBody)
		return
	}

	if err := h.membership.JoinPool(c.Request.Context(), identity.UserID, req.Code); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// List handles GET /pools
func (h *PoolHandler) List(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized."})
		return
	}

	pools, err := h.pools.ListPoolsForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pools": pools})
}

// Get handles GET /pools/:id
func (h *PoolHandler) Get(c *gin.Context) {
	pool, err := h.pools.GetPool(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pool": pool})
}
