package repository

import (
	"context"

	"github.com/NovaAI-innovation/backend12/internal/domain"
)

// GalleryRepository persists gallery image records.
type GalleryRepository interface {
	// List returns up to limit images ordered by display order, starting
	// after the cursor when one is given.
	List(ctx context.Context, limit int, cursor *int) ([]domain.GalleryImage, error)
	ListAll(ctx context.Context) ([]domain.GalleryImage, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.GalleryImage, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.GalleryImage, error)
	Insert(ctx context.Context, image domain.GalleryImage) (domain.GalleryImage, error)
	UpdateCaption(ctx context.Context, id int64, caption *string) (domain.GalleryImage, error)
	Delete(ctx context.Context, ids []int64) ([]int64, error)
	MaxDisplayOrder(ctx context.Context) (int, error)
	// SetDisplayOrders rewrites display_order to each id's position in the
	// slice, atomically.
	SetDisplayOrders(ctx context.Context, orderedIDs []int64) error
}

// BookingRepository persists booking submissions.
type BookingRepository interface {
	Insert(ctx context.Context, booking domain.Booking) (domain.Booking, error)
}
