package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type EducationHandler struct {
	educationService *services.EducationService
	logger           *logger.Logger
}

func NewEducationHandler(educationService *services.EducationService, logger *logger.Logger) *EducationHandler {
	return &EducationHandler{
		educationService: educationService,
		logger:           logger,
	}
}

func (h *EducationHandler) Create(c *gin.Context) {
	var req services.EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	education, err := h.educationService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"education": education,
	})
}

func (h *EducationHandler) Update(c *gin.Context) {
	var req services.EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.educationService.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *EducationHandler) Delete(c *gin.Context) {
	if err := h.educationService.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
