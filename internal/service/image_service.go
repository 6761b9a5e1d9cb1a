package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/repository"
)

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// ImageServiceConfig holds upload limits and the storage location
type ImageServiceConfig struct {
	Dir         string
	MaxSizeMB   int64
	AllowedMIME []string
}

// ImageUpload describes an incoming file
type ImageUpload struct {
	FileName   string
	MIMEType   string
	SizeBytes  int64
	Category   string
	UploadedBy string
	Body       io.Reader
}

// ImageService manages the image library: file storage on disk plus
// metadata in the database
type ImageService interface {
	Upload(ctx context.Context, upload *ImageUpload) (*domain.ImageAsset, error)
	GetByID(ctx context.Context, id string) (*domain.ImageAsset, error)
	List(ctx context.Context, filter dto.ImageListFilter) ([]*domain.ImageAsset, error)
	Open(ctx context.Context, id string) (*domain.ImageAsset, io.ReadCloser, error)
	Update(ctx context.Context, id string, req *dto.UpdateImageRequest) (*domain.ImageAsset, error)
	Delete(ctx context.Context, id string) error
}

type imageService struct {
	imageRepo repository.ImageRepository
	config    *ImageServiceConfig
}

// NewImageService creates a new ImageService
func NewImageService(imageRepo repository.ImageRepository, config *ImageServiceConfig) ImageService {
	if config.MaxSizeMB == 0 {
		config.MaxSizeMB = 10
	}
	if len(config.AllowedMIME) == 0 {
		config.AllowedMIME = []string{"image/jpeg", "image/png", "image/webp", "image/svg+xml"}
	}
	return &imageService{
		imageRepo: imageRepo,
		config:    config,
	}
}

// Upload stores the file under the upload directory and records its
// metadata. The stored name is the asset ID so uploads never collide.
func (s *imageService) Upload(ctx context.Context, upload *ImageUpload) (*domain.ImageAsset, error) {
	if upload.SizeBytes > s.config.MaxSizeMB*1024*1024 {
		return nil, ErrImageTooLarge
	}
	if !s.mimeAllowed(upload.MIMEType) {
		return nil, ErrUnsupportedImage
	}

	if err := os.MkdirAll(s.config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	id := uuid.New().String()
	storedPath := filepath.Join(s.config.Dir, id+filepath.Ext(upload.FileName))

	out, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create image file: %w", err)
	}
	written, err := io.Copy(out, upload.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	now := time.Now()
	image := &domain.ImageAsset{
		ID:         id,
		FileName:   upload.FileName,
		StoredPath: storedPath,
		MIMEType:   upload.MIMEType,
		SizeBytes:  written,
		Category:   upload.Category,
		UploadedBy: upload.UploadedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		os.Remove(storedPath)
		return nil, err
	}
	return image, nil
}

// GetByID retrieves image metadata
func (s *imageService) GetByID(ctx context.Context, id string) (*domain.ImageAsset, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

// List retrieves image metadata matching the filter
func (s *imageService) List(ctx context.Context, filter dto.ImageListFilter) ([]*domain.ImageAsset, error) {
	return s.imageRepo.List(ctx, filter)
}

// Open returns the metadata and an open handle on the stored file. The
// caller closes the handle.
func (s *imageService) Open(ctx context.Context, id string) (*domain.ImageAsset, io.ReadCloser, error) {
	image, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(image.StoredPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrImageNotFound
		}
		return nil, nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return image, f, nil
}

// Update edits image metadata
func (s *imageService) Update(ctx context.Context, id string, req *dto.UpdateImageRequest) (*domain.ImageAsset, error) {
	image, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FileName != nil {
		image.FileName = *req.FileName
	}
	if req.Category != nil {
		image.Category = *req.Category
	}
	if req.Tags != nil {
		image.Tags = req.Tags
	}
	image.UpdatedAt = time.Now()

	if err := s.imageRepo.Update(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// Delete removes the metadata row and the stored file. A missing file is
// not an error, the row is the source of truth.
func (s *imageService) Delete(ctx context.Context, id string) error {
	image, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(image.StoredPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	return nil
}

func (s *imageService) mimeAllowed(mime string) bool {
	for _, allowed := range s.config.AllowedMIME {
		if mime == allowed {
			return true
		}
	}
	return false
}
