package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type WorkHandler struct {
	workService *services.WorkService
	logger      *logger.Logger
}

func NewWorkHandler(workService *services.WorkService, logger *logger.Logger) *WorkHandler {
	return &WorkHandler{
		workService: workService,
		logger:      logger,
	}
}

func (h *WorkHandler) Create(c *gin.Context) {
	var req services.WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	work, err := h.workService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"work":    work,
	})
}

func (h *WorkHandler) Update(c *gin.Context) {
	var req services.WorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.workService.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *WorkHandler) Delete(c *gin.Context) {
	if err := h.workService.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
