package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	logger         *logger.Logger
}

func NewProfileHandler(profileService *services.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get profile")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// ReplacePhoto takes a multipart form with a "file" part and a "type" field
// of avatar or cover, and swaps the profile photo through the archive flow.
func (h *ProfileHandler) ReplacePhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	kind := c.PostForm("type")

	upload, file, err := openUpload(fileHeader)
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	user, err := h.profileService.ReplacePhoto(c.Request.Context(), middleware.GetUserID(c), kind, upload)
	if err != nil {
		h.logger.WithError(err).Error("Failed to replace profile photo")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

func (h *ProfileHandler) GetPhotoArchive(c *gin.Context) {
	offset, limit := pagination(c)

	photos, err := h.profileService.GetPhotoArchive(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"photos":  photos,
	})
}

// openUpload adapts a multipart header into the service-layer upload shape.
// The caller owns closing the returned file.
func openUpload(fileHeader *multipart.FileHeader) (*services.FileUpload, multipart.File, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &services.FileUpload{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	}, file, nil
}
