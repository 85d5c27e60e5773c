package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NovaAI-innovation/backend12/internal/blob"
	"github.com/NovaAI-innovation/backend12/internal/domain"
	"github.com/NovaAI-innovation/backend12/internal/repository"
)

// Service-level validation failures surfaced to handlers.
var (
	ErrImagesNotFound = errors.New("images not found")
	ErrNoInput        = errors.New("no input provided")
	ErrDuplicateIDs   = errors.New("duplicate image ids")
	ErrAllUploadsFail = errors.New("all uploads failed")
)

const (
	defaultPageLimit = 12
	maxPageLimit     = 100
	maxUploadBytes   = 10 << 20
)

// Page is a cursor-paginated slice of the public gallery.
type Page struct {
	Images     []domain.GalleryImage
	NextCursor *int
	HasMore    bool
	TotalCount int64
}

// UploadItem is one file in a CMS upload request.
type UploadItem struct {
	Filename string
	Data     []byte
	Caption  *string
}

// UploadFailure reports one file that could not be stored.
type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// GalleryService orchestrates the image repository and the blob store.
type GalleryService struct {
	repo   repository.GalleryRepository
	blobs  blob.Store
	logger *zap.Logger
}

// NewGalleryService wires the gallery components.
func NewGalleryService(repo repository.GalleryRepository, blobs blob.Store, logger *zap.Logger) *GalleryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GalleryService{repo: repo, blobs: blobs, logger: logger}
}

// ListPublic returns one page of the gallery ordered by display order,
// continuing after the cursor when one is given.
func (s *GalleryService) ListPublic(ctx context.Context, limit int, cursor *int) (Page, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		return Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrNoInput, maxPageLimit)
	}

	// Fetch one extra row to learn whether another page exists.
	images, err := s.repo.List(ctx, limit+1, cursor)
	if err != nil {
		return Page{}, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, err
	}

	page := Page{TotalCount: total}
	if len(images) > limit {
		page.HasMore = true
		images = images[:limit]
	}
	page.Images = images
	if page.HasMore && len(images) > 0 {
		next := images[len(images)-1].DisplayOrder
		page.NextCursor = &next
	}
	return page, nil
}

// ListAll returns every image in display order, for the CMS dashboard.
func (s *GalleryService) ListAll(ctx context.Context) ([]domain.GalleryImage, error) {
	return s.repo.ListAll(ctx)
}

// Upload stores each file in the blob store concurrently, then records the
// survivors sequentially with display orders appended after the current
// maximum. Per-file failures are reported alongside the successes; the call
// errors only when every file fails.
func (s *GalleryService) Upload(ctx context.Context, items []UploadItem) ([]domain.GalleryImage, []UploadFailure, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one image file is required", ErrNoInput)
	}

	urls := make([]string, len(items))
	uploadErrs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		if len(item.Data) == 0 {
			uploadErrs[i] = fmt.Errorf("empty file")
			continue
		}
		if len(item.Data) > maxUploadBytes {
			uploadErrs[i] = fmt.Errorf("file exceeds %d bytes", maxUploadBytes)
			continue
		}
		g.Go(func() error {
			url, err := s.blobs.Upload(gctx, item.Data, item.Filename)
			if err != nil {
				uploadErrs[i] = err
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	// Goroutines record failures instead of returning them, so Wait only
	// reports context cancellation.
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var failures []UploadFailure
	maxOrder, err := s.repo.MaxDisplayOrder(ctx)
	if err != nil {
		return nil, nil, err
	}

	var created []domain.GalleryImage
	for i, item := range items {
		if uploadErrs[i] != nil {
			s.logger.Error("blob upload failed",
				zap.String("filename", item.Filename),
				zap.Error(uploadErrs[i]),
			)
			failures = append(failures, UploadFailure{Filename: item.Filename, Error: uploadErrs[i].Error()})
			continue
		}

		image, err := s.repo.Insert(ctx, domain.GalleryImage{
			URL:          urls[i],
			Caption:      normalizeCaption(item.Caption),
			DisplayOrder: maxOrder + len(created) + 1,
		})
		if err != nil {
			s.logger.Error("image insert failed",
				zap.String("filename", item.Filename),
				zap.Error(err),
			)
			failures = append(failures, UploadFailure{Filename: item.Filename, Error: err.Error()})
			continue
		}
		created = append(created, image)
	}

	if len(created) == 0 {
		return nil, failures, ErrAllUploadsFail
	}
	if len(failures) > 0 {
		s.logger.Warn("partial upload success",
			zap.Int("succeeded", len(created)),
			zap.Int("failed", len(failures)),
		)
	}
	return created, failures, nil
}

// UpdateCaption sets or clears an image caption. Whitespace-only captions
// are stored as NULL.
func (s *GalleryService) UpdateCaption(ctx context.Context, id int64, caption *string) (domain.GalleryImage, error) {
	return s.repo.UpdateCaption(ctx, id, normalizeCaption(caption))
}

// Reorder moves the submitted ids to the front of the gallery in the given
// order; all remaining images keep their current relative order behind them.
// Every display_order is rewritten 0..n-1 so no gaps or collisions survive.
func (s *GalleryService) Reorder(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one image id is required", ErrNoInput)
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return 0, ErrDuplicateIDs
		}
		seen[id] = struct{}{}
	}

	existing, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(existing) != len(ids) {
		found := make(map[int64]struct{}, len(existing))
		for _, img := range existing {
			found[img.ID] = struct{}{}
		}
		var missing []int64
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return 0, fmt.Errorf("%w: %v", ErrImagesNotFound, missing)
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	final := make([]int64, 0, len(all))
	final = append(final, ids...)
	for _, img := range all {
		if _, reordered := seen[img.ID]; !reordered {
			final = append(final, img.ID)
		}
	}

	if err := s.repo.SetDisplayOrders(ctx, final); err != nil {
		return 0, err
	}

	s.logger.Info("gallery reordered", zap.Int("moved", len(ids)), zap.Int("total", len(final)))
	return len(ids), nil
}

// Delete removes images from the blob store (best effort, concurrently) and
// the database (authoritative). It returns the ids actually deleted.
func (s *GalleryService) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one image id is required", ErrNoInput)
	}

	images, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrImagesNotFound, ids)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, image := range images {
		g.Go(func() error {
			if err := s.blobs.Delete(gctx, image.URL); err != nil {
				// The database row still goes; an orphaned blob is
				// cheaper than a dangling gallery entry.
				s.logger.Warn("blob delete failed",
					zap.Int64("image_id", image.ID),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	existingIDs := make([]int64, 0, len(images))
	for _, image := range images {
		existingIDs = append(existingIDs, image.ID)
	}

	deleted, err := s.repo.Delete(ctx, existingIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("gallery images deleted", zap.Int("count", len(deleted)))
	return deleted, nil
}

func normalizeCaption(caption *string) *string {
	if caption == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*caption)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
