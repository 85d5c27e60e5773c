package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NovaAI-innovation/backend12/internal/service"
)

// CMSHandler serves the token-gated gallery management endpoints.
type CMSHandler struct {
	Gallery *service.GalleryService
}

func NewCMSHandler(gallery *service.GalleryService) *CMSHandler {
	return &CMSHandler{Gallery: gallery}
}

// ListImages returns every image in display order for the dashboard.
func (h *CMSHandler) ListImages(c *gin.Context) {
	images, err := h.Gallery.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toImageResponses(images))
}

// UploadImages accepts one or more image files as multipart form data under
// the "files" field, with optional parallel "captions" values. A single
// caption applies to every file. Responds 201 with the created records;
// per-file failures ride along without failing the whole batch.
func (h *CMSHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Multipart form data required."})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "At least one image file is required."})
		return
	}
	captions := form.Value["captions"]

	items := make([]service.UploadItem, 0, len(files))
	for i, header := range files {
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": fmt.Sprintf("File %q is not a valid image file.", header.Filename)})
			return
		}

		file, err := header.Open()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondServiceError(c, err)
			return
		}

		var caption *string
		switch {
		case i < len(captions):
			caption = &captions[i]
		case len(captions) == 1:
			caption = &captions[0]
		}

		items = append(items, service.UploadItem{
			Filename: header.Filename,
			Data:     data,
			Caption:  caption,
		})
	}

	created, failures, err := h.Gallery.Upload(c.Request.Context(), items)
	if err != nil {
		if errors.Is(err, service.ErrAllUploadsFail) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload_failed", "message": "All uploads failed.", "errors": failures})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"images": toImageResponses(created),
		"errors": failures,
	})
}

// UpdateImage sets or clears an image caption.
func (h *CMSHandler) UpdateImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Image id must be an integer."})
		return
	}

	var req struct {
		Caption *string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Invalid request body."})
		return
	}

	image, err := h.Gallery.UpdateCaption(c.Request.Context(), id, req.Caption)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toImageResponse(image))
}

// Reorder rewrites the gallery display order. The submitted ids move to the
// front in the given order; other images keep their relative order.
func (h *CMSHandler) Reorder(c *gin.Context) {
	var req struct {
		ImageIDs []int64 `json:"image_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "image_ids is required."})
		return
	}

	count, err := h.Gallery.Reorder(c.Request.Context(), req.ImageIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully reordered %d images", count),
		"count":   count,
	})
}

// DeleteImage removes a single image.
func (h *CMSHandler) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Image id must be an integer."})
		return
	}

	deleted, err := h.Gallery.Delete(c.Request.Context(), []int64{id})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Deleted %d image(s) successfully", len(deleted)),
		"deleted_ids": deleted,
	})
}

// BulkDelete removes a batch of images in one request.
func (h *CMSHandler) BulkDelete(c *gin.Context) {
	var req struct {
		ImageIDs []int64 `json:"image_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "image_ids is required."})
		return
	}

	deleted, err := h.Gallery.Delete(c.Request.Context(), req.ImageIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     fmt.Sprintf("Deleted %d image(s) successfully", len(deleted)),
		"deleted_ids": deleted,
	})
}
