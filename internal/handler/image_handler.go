package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/middleware"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
)

// ImageHandler handles image library HTTP requests
type ImageHandler struct {
	imageService service.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// List handles GET /images
func (h *ImageHandler) List(c *gin.Context) {
	var filter dto.ImageListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	images, err := h.imageService.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, images)
}

// Get handles GET /images/:id (metadata only)
func (h *ImageHandler) Get(c *gin.Context) {
	image, err := h.imageService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			response.NotFound(c, "Image not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, image)
}

// Upload handles POST /images. The file arrives as a multipart field
// named "file"; category and tags ride alongside as form values.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "An image file is required")
		return
	}
	defer file.Close()

	userID, _ := middleware.GetUserID(c)
	upload := &service.ImageUpload{
		FileName:   header.Filename,
		MIMEType:   header.Header.Get("Content-Type"),
		SizeBytes:  header.Size,
		Category:   c.PostForm("category"),
		UploadedBy: userID,
		Body:       file,
	}

	image, err := h.imageService.Upload(c.Request.Context(), upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, response.ErrCodeBadRequest, "Image exceeds the size limit", "")
		case errors.Is(err, service.ErrUnsupportedImage):
			response.BadRequest(c, "Unsupported image type")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, image)
}

// File handles GET /images/:id/file, streaming the stored bytes
func (h *ImageHandler) File(c *gin.Context) {
	image, body, err := h.imageService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			response.NotFound(c, "Image not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, image.FileName))
	c.DataFromReader(http.StatusOK, image.SizeBytes, image.MIMEType, body, nil)
}

// Update handles PUT /images/:id (metadata only)
func (h *ImageHandler) Update(c *gin.Context) {
	var req dto.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	for i, tag := range req.Tags {
		req.Tags[i] = strings.TrimSpace(tag)
	}

	image, err := h.imageService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			response.NotFound(c, "Image not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, image)
}

// Delete handles DELETE /images/:id
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.imageService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			response.NotFound(c, "Image not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
