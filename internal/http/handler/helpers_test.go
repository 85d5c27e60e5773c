package handler_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/NovaAI-innovation/backend12/internal/domain"
)

// galleryRepoStub is an in-memory GalleryRepository for handler tests.
type galleryRepoStub struct {
	mu     sync.Mutex
	nextID int64
	images map[int64]*domain.GalleryImage
}

func newGalleryRepoStub() *galleryRepoStub {
	return &galleryRepoStub{nextID: 1, images: make(map[int64]*domain.GalleryImage)}
}

func (r *galleryRepoStub) add(url string, caption *string, order int) domain.GalleryImage {
	r.mu.Lock()
	defer r.mu.Unlock()
	img := &domain.GalleryImage{
		ID:           r.nextID,
		URL:          url,
		Caption:      caption,
		DisplayOrder: order,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.images[img.ID] = img
	r.nextID++
	return *img
}

func (r *galleryRepoStub) sorted() []domain.GalleryImage {
	out := make([]domain.GalleryImage, 0, len(r.images))
	for _, img := range r.images {
		out = append(out, *img)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *galleryRepoStub) List(_ context.Context, limit int, cursor *int) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.GalleryImage
	for _, img := range r.sorted() {
		if cursor != nil && img.DisplayOrder <= *cursor {
			continue
		}
		out = append(out, img)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *galleryRepoStub) ListAll(_ context.Context) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(), nil
}

func (r *galleryRepoStub) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.images)), nil
}

func (r *galleryRepoStub) GetByID(_ context.Context, id int64) (domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return domain.GalleryImage{}, pgx.ErrNoRows
	}
	return *img, nil
}

func (r *galleryRepoStub) GetByIDs(_ context.Context, ids []int64) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.GalleryImage
	for _, img := range r.sorted() {
		for _, id := range ids {
			if img.ID == id {
				out = append(out, img)
				break
			}
		}
	}
	return out, nil
}

func (r *galleryRepoStub) Insert(_ context.Context, image domain.GalleryImage) (domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	image.ID = r.nextID
	r.nextID++
	image.CreatedAt = time.Now()
	image.UpdatedAt = time.Now()
	r.images[image.ID] = &image
	return image, nil
}

func (r *galleryRepoStub) UpdateCaption(_ context.Context, id int64, caption *string) (domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[id]
	if !ok {
		return domain.GalleryImage{}, pgx.ErrNoRows
	}
	img.Caption = caption
	img.UpdatedAt = time.Now()
	return *img, nil
}

func (r *galleryRepoStub) Delete(_ context.Context, ids []int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []int64
	for _, id := range ids {
		if _, ok := r.images[id]; ok {
			delete(r.images, id)
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}

func (r *galleryRepoStub) MaxDisplayOrder(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := -1
	for _, img := range r.images {
		if img.DisplayOrder > max {
			max = img.DisplayOrder
		}
	}
	return max, nil
}

func (r *galleryRepoStub) SetDisplayOrders(_ context.Context, orderedIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pos, id := range orderedIDs {
		img, ok := r.images[id]
		if !ok {
			return fmt.Errorf("image %d not found", id)
		}
		img.DisplayOrder = pos
	}
	return nil
}

// blobStoreStub returns deterministic URLs without touching the network.
type blobStoreStub struct {
	mu            sync.Mutex
	failFilenames map[string]bool
	deleted       []string
}

func (f *blobStoreStub) Upload(_ context.Context, _ []byte, filename string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFilenames[filename] {
		return "", errors.New("upstream rejected upload")
	}
	return "https://fake.blob/" + filename, nil
}

func (f *blobStoreStub) Delete(_ context.Context, assetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, assetURL)
	return nil
}

// bookingRepoStub records booking inserts.
type bookingRepoStub struct {
	mu       sync.Mutex
	nextID   int64
	bookings []domain.Booking
}

func (r *bookingRepoStub) Insert(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = time.Now()
	r.bookings = append(r.bookings, booking)
	return booking, nil
}
