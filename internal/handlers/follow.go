package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type FollowHandler struct {
	followService *services.FollowService
	logger        *logger.Logger
}

func NewFollowHandler(followService *services.FollowService, logger *logger.Logger) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		logger:        logger,
	}
}

type followRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *FollowHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.followService.Follow(c.Request.Context(), middleware.GetUserID(c), req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	if err := h.followService.Unfollow(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *FollowHandler) IsFollowing(c *gin.Context) {
	following, err := h.followService.IsFollowing(c.Request.Context(), middleware.GetUserID(c), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"following": following,
	})
}

func (h *FollowHandler) Followers(c *gin.Context) {
	offset, limit := pagination(c)

	users, err := h.followService.GetFollowers(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"followers": users,
	})
}

func (h *FollowHandler) Following(c *gin.Context) {
	offset, limit := pagination(c)

	users, err := h.followService.GetFollowing(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"following": users,
	})
}
