package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/pkg/logger"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/ogg":       true,
	"video/quicktime": true,
}

// FileUpload carries one incoming multipart file into the service layer.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadedFile is what the client gets back per accepted file.
type UploadedFile struct {
	URL          string `json:"url"`
	MediaType    string `json:"media_type"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
}

type UploadService struct {
	storage    ObjectStorage
	storageCfg *config.StorageConfig
	mediaCfg   *config.MediaConfig
	logger     *logger.Logger
}

func NewUploadService(storage ObjectStorage, storageCfg *config.StorageConfig, mediaCfg *config.MediaConfig, logger *logger.Logger) *UploadService {
	return &UploadService{
		storage:    storage,
		storageCfg: storageCfg,
		mediaCfg:   mediaCfg,
		logger:     logger,
	}
}

// mediaKind maps a content type to the stored media kind by its prefix.
func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return ""
	}
}

// newObjectKey builds a collision-resistant per-user key:
// <prefix>/<userID>/<timestamp>-<token><ext>.
func newObjectKey(prefix, userID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s/%s/%d-%s%s", strings.Trim(prefix, "/"), userID, time.Now().UnixNano(), token, ext)
}

func validateMediaFile(file *FileUpload, sizeLimit int64, imagesOnly bool) error {
	if file.Size > sizeLimit {
		return fmt.Errorf("%w: file %s exceeds the %dMB size limit", ErrValidation, file.Name, sizeLimit>>20)
	}
	if allowedImageTypes[file.ContentType] {
		return nil
	}
	if !imagesOnly && allowedVideoTypes[file.ContentType] {
		return nil
	}
	return fmt.Errorf("%w: file %s has unsupported content type %s", ErrValidation, file.Name, file.ContentType)
}

// UploadPostMedia streams a batch of 1-10 files to object storage under the
// caller's prefix. The first failing file aborts the batch; files already
// uploaded in the same batch are not rolled back.
func (s *UploadService) UploadPostMedia(ctx context.Context, userID string, files []*FileUpload) ([]UploadedFile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrValidation)
	}
	if len(files) > s.mediaCfg.MaxFilesPerUpload {
		return nil, fmt.Errorf("%w: at most %d files per upload", ErrValidation, s.mediaCfg.MaxFilesPerUpload)
	}

	sizeLimit := s.mediaCfg.PostFileLimitMB << 20

	for _, file := range files {
		if err := validateMediaFile(file, sizeLimit, false); err != nil {
			return nil, err
		}
	}

	uploaded := make([]UploadedFile, 0, len(files))
	for _, file := range files {
		key := newObjectKey(s.storageCfg.PostPrefix, userID, file.Name)
		url, err := s.storage.Upload(ctx, key, file.ContentType, file.Body)
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"file":            file.Name,
				"uploaded_so_far": len(uploaded),
			}).Error("Post media upload aborted mid-batch")
			return nil, fmt.Errorf("failed to upload file %s: %w", file.Name, err)
		}
		uploaded = append(uploaded, UploadedFile{
			URL:          url,
			MediaType:    mediaKind(file.ContentType),
			OriginalName: file.Name,
			Size:         file.Size,
		})
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"files":   len(uploaded),
	}).Info("Post media uploaded successfully")

	return uploaded, nil
}

// UploadReelVideo stores one reel video (video types only, higher ceiling).
func (s *UploadService) UploadReelVideo(ctx context.Context, userID string, file *FileUpload) (*UploadedFile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	sizeLimit := s.mediaCfg.ReelFileLimitMB << 20
	if file.Size > sizeLimit {
		return nil, fmt.Errorf("%w: file %s exceeds the %dMB size limit", ErrValidation, file.Name, s.mediaCfg.ReelFileLimitMB)
	}
	if !allowedVideoTypes[file.ContentType] {
		return nil, fmt.Errorf("%w: file %s has unsupported content type %s", ErrValidation, file.Name, file.ContentType)
	}

	key := newObjectKey(s.storageCfg.ReelPrefix, userID, file.Name)
	url, err := s.storage.Upload(ctx, key, file.ContentType, file.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file %s: %w", file.Name, err)
	}

	return &UploadedFile{
		URL:          url,
		MediaType:    "video",
		OriginalName: file.Name,
		Size:         file.Size,
	}, nil
}
