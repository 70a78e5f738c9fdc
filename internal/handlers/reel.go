package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type ReelHandler struct {
	reelService       *services.ReelService
	engagementService *services.ReelEngagementService
	commentService    *services.ReelCommentService
	uploadService     *services.UploadService
	logger            *logger.Logger
}

func NewReelHandler(
	reelService *services.ReelService,
	engagementService *services.ReelEngagementService,
	commentService *services.ReelCommentService,
	uploadService *services.UploadService,
	logger *logger.Logger,
) *ReelHandler {
	return &ReelHandler{
		reelService:       reelService,
		engagementService: engagementService,
		commentService:    commentService,
		uploadService:     uploadService,
		logger:            logger,
	}
}

func (h *ReelHandler) Create(c *gin.Context) {
	var req services.CreateReelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reel, err := h.reelService.CreateReel(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create reel")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"reel":    reel,
	})
}

// UploadVideo stores the reel video ahead of the reel create call.
func (h *ReelHandler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	upload, file, err := openUpload(fileHeader)
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	uploaded, err := h.uploadService.UploadReelVideo(c.Request.Context(), middleware.GetUserID(c), upload)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upload reel video")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file":    uploaded,
	})
}

func (h *ReelHandler) Get(c *gin.Context) {
	reel, err := h.reelService.GetReel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reel":    reel,
	})
}

func (h *ReelHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	reels, err := h.reelService.ListReels(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reels":   reels,
	})
}

func (h *ReelHandler) ListByUser(c *gin.Context) {
	offset, limit := pagination(c)

	reels, err := h.reelService.GetUserReels(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reels":   reels,
	})
}

func (h *ReelHandler) Update(c *gin.Context) {
	var req services.UpdateReelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reel, err := h.reelService.UpdateReel(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reel":    reel,
	})
}

func (h *ReelHandler) Delete(c *gin.Context) {
	if err := h.reelService.DeleteReel(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ReelHandler) Like(c *gin.Context) {
	var req services.LikeReelRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondBindError(c, err)
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *ReelHandler) TrackView(c *gin.Context) {
	var req services.TrackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.engagementService.TrackView(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"view":    result,
	})
}

func (h *ReelHandler) Share(c *gin.Context) {
	if err := h.engagementService.Share(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ReelHandler) ToggleSave(c *gin.Context) {
	result, err := h.engagementService.ToggleSave(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *ReelHandler) ListSaved(c *gin.Context) {
	offset, limit := pagination(c)

	saves, err := h.engagementService.GetSavedReels(c.Request.Context(), middleware.GetUserID(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"saved":   saves,
	})
}

func (h *ReelHandler) CreateComment(c *gin.Context) {
	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": comment,
	})
}

func (h *ReelHandler) ListComments(c *gin.Context) {
	offset, limit := pagination(c)

	comments, err := h.commentService.List(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"comments": comments,
	})
}

func (h *ReelHandler) UpdateComment(c *gin.Context) {
	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("commentId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"comment": comment,
	})
}

func (h *ReelHandler) DeleteComment(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
