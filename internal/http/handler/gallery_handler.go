package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NovaAI-innovation/backend12/internal/service"
)

// GalleryHandler serves the public, unauthenticated gallery endpoint.
type GalleryHandler struct {
	Gallery *service.GalleryService
}

func NewGalleryHandler(gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{Gallery: gallery}
}

// List returns one cursor-paginated page of the gallery, ordered by display
// order. Query params: limit (default 12, max 100) and cursor (the last
// display_order of the previous page).
func (h *GalleryHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Limit must be a positive integer."})
			return
		}
		limit = parsed
	}

	var cursor *int
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Cursor must be an integer."})
			return
		}
		cursor = &parsed
	}

	page, err := h.Gallery.ListPublic(c.Request.Context(), limit, cursor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	images := make([]GalleryImagePublicResponse, 0, len(page.Images))
	for _, image := range page.Images {
		images = append(images, GalleryImagePublicResponse{
			ID:           image.ID,
			URL:          image.URL,
			Caption:      image.Caption,
			DisplayOrder: image.DisplayOrder,
		})
	}

	c.JSON(http.StatusOK, GalleryImagesPageResponse{
		Images: images,
		Pagination: PaginationMetadata{
			NextCursor: page.NextCursor,
			HasMore:    page.HasMore,
			TotalCount: page.TotalCount,
		},
	})
}
