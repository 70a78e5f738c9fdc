package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/logger"
)

type PostHandler struct {
	postService   *services.PostService
	uploadService *services.UploadService
	logger        *logger.Logger
}

func NewPostHandler(postService *services.PostService, uploadService *services.UploadService, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postService:   postService,
		uploadService: uploadService,
		logger:        logger,
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req services.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create post")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"post":    post,
	})
}

// UploadMedia accepts a multipart form with up to ten "files" parts and
// returns the stored URLs for a subsequent post create.
func (h *PostHandler) UploadMedia(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}

	headers := form.File["files"]
	uploads := make([]*services.FileUpload, 0, len(headers))
	for _, header := range headers {
		upload, file, err := openUpload(header)
		if err != nil {
			h.logger.WithError(err).Error("Failed to open uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
			return
		}
		defer file.Close()
		uploads = append(uploads, upload)
	}

	files, err := h.uploadService.UploadPostMedia(c.Request.Context(), middleware.GetUserID(c), uploads)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upload post media")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"files":   files,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
	})
}

func (h *PostHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	posts, err := h.postService.ListPosts(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
	})
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	offset, limit := pagination(c)

	posts, err := h.postService.GetUserPosts(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
