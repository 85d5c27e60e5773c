package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/domain"
	"github.com/NovaAI-innovation/backend12/internal/service"
)

// GalleryImageResponse is the CMS-facing image payload.
type GalleryImageResponse struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Caption      *string   `json:"caption"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GalleryImagePublicResponse trims timestamps the public frontend never
// reads.
type GalleryImagePublicResponse struct {
	ID           int64   `json:"id"`
	URL          string  `json:"url"`
	Caption      *string `json:"caption"`
	DisplayOrder int     `json:"display_order"`
}

// PaginationMetadata describes cursor pagination state.
type PaginationMetadata struct {
	NextCursor *int  `json:"next_cursor"`
	HasMore    bool  `json:"has_more"`
	TotalCount int64 `json:"total_count"`
}

// GalleryImagesPageResponse is one public gallery page.
type GalleryImagesPageResponse struct {
	Images     []GalleryImagePublicResponse `json:"images"`
	Pagination PaginationMetadata           `json:"pagination"`
}

func toImageResponse(image domain.GalleryImage) GalleryImageResponse {
	return GalleryImageResponse{
		ID:           image.ID,
		URL:          image.URL,
		Caption:      image.Caption,
		DisplayOrder: image.DisplayOrder,
		CreatedAt:    image.CreatedAt,
		UpdatedAt:    image.UpdatedAt,
	}
}

func toImageResponses(images []domain.GalleryImage) []GalleryImageResponse {
	out := make([]GalleryImageResponse, 0, len(images))
	for _, image := range images {
		out = append(out, toImageResponse(image))
	}
	return out
}

// respondServiceError maps service failures onto stable response bodies.
// Internal detail stays in the logs.
func respondServiceError(c *gin.Context, err error) {
	logger := zap.L()
	switch {
	case errors.Is(err, service.ErrNoInput), errors.Is(err, service.ErrDuplicateIDs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
	case errors.Is(err, service.ErrImagesNotFound), errors.Is(err, pgx.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Requested images do not exist."})
	default:
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Internal server error."})
	}
}
