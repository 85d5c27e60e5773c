package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NovaAI-innovation/backend12/internal/domain"
)

// Compile-time interface assertions.
var (
	_ GalleryRepository = (*PostgresGalleryRepo)(nil)
	_ BookingRepository = (*PostgresBookingRepo)(nil)
)

const imageColumns = "id, url, caption, display_order, created_at, updated_at"

// PostgresGalleryRepo implements GalleryRepository on a pgx pool.
// updated_at is refreshed by a database trigger on every UPDATE, so no
// statement here touches it directly.
type PostgresGalleryRepo struct {
	db *pgxpool.Pool
}

func NewPostgresGalleryRepo(pool *pgxpool.Pool) *PostgresGalleryRepo {
	return &PostgresGalleryRepo{db: pool}
}

func (r *PostgresGalleryRepo) List(ctx context.Context, limit int, cursor *int) ([]domain.GalleryImage, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor != nil {
		rows, err = r.db.Query(ctx,
			"SELECT "+imageColumns+" FROM gallery_images WHERE display_order > $1 ORDER BY display_order ASC LIMIT $2",
			*cursor, limit)
	} else {
		rows, err = r.db.Query(ctx,
			"SELECT "+imageColumns+" FROM gallery_images ORDER BY display_order ASC LIMIT $1",
			limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()
	return scanImages(rows)
}

func (r *PostgresGalleryRepo) ListAll(ctx context.Context) ([]domain.GalleryImage, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+imageColumns+" FROM gallery_images ORDER BY display_order ASC")
	if err != nil {
		return nil, fmt.Errorf("list all images: %w", err)
	}
	defer rows.Close()
	return scanImages(rows)
}

func (r *PostgresGalleryRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM gallery_images").Scan(&count); err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}

func (r *PostgresGalleryRepo) GetByID(ctx context.Context, id int64) (domain.GalleryImage, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+imageColumns+" FROM gallery_images WHERE id = $1", id)
	image, err := scanImage(row)
	if err != nil {
		return domain.GalleryImage{}, fmt.Errorf("get image %d: %w", id, err)
	}
	return image, nil
}

func (r *PostgresGalleryRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.GalleryImage, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+imageColumns+" FROM gallery_images WHERE id = ANY($1) ORDER BY display_order ASC", ids)
	if err != nil {
		return nil, fmt.Errorf("get images: %w", err)
	}
	defer rows.Close()
	return scanImages(rows)
}

const insertImageSQL = `INSERT INTO gallery_images (url, caption, display_order)
VALUES ($1, $2, $3)
RETURNING ` + imageColumns

func (r *PostgresGalleryRepo) Insert(ctx context.Context, image domain.GalleryImage) (domain.GalleryImage, error) {
	row := r.db.QueryRow(ctx, insertImageSQL, image.URL, image.Caption, image.DisplayOrder)
	inserted, err := scanImage(row)
	if err != nil {
		return domain.GalleryImage{}, fmt.Errorf("insert image: %w", err)
	}
	return inserted, nil
}

const updateCaptionSQL = `UPDATE gallery_images SET caption = $2 WHERE id = $1
RETURNING ` + imageColumns

func (r *PostgresGalleryRepo) UpdateCaption(ctx context.Context, id int64, caption *string) (domain.GalleryImage, error) {
	row := r.db.QueryRow(ctx, updateCaptionSQL, id, caption)
	updated, err := scanImage(row)
	if err != nil {
		return domain.GalleryImage{}, fmt.Errorf("update caption %d: %w", id, err)
	}
	return updated, nil
}

func (r *PostgresGalleryRepo) Delete(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		"DELETE FROM gallery_images WHERE id = ANY($1) RETURNING id", ids)
	if err != nil {
		return nil, fmt.Errorf("delete images: %w", err)
	}
	defer rows.Close()

	var deleted []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted id: %w", err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delete images: %w", err)
	}
	return deleted, nil
}

// MaxDisplayOrder returns -1 for an empty gallery so the first insert lands
// at display_order 0.
func (r *PostgresGalleryRepo) MaxDisplayOrder(ctx context.Context) (int, error) {
	var max int
	if err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(display_order), -1) FROM gallery_images").Scan(&max); err != nil {
		return 0, fmt.Errorf("max display order: %w", err)
	}
	return max, nil
}

func (r *PostgresGalleryRepo) SetDisplayOrders(ctx context.Context, orderedIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	for position, id := range orderedIDs {
		if _, err := tx.Exec(ctx,
			"UPDATE gallery_images SET display_order = $2 WHERE id = $1", id, position); err != nil {
			return fmt.Errorf("set display order %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

// PostgresBookingRepo implements BookingRepository.
type PostgresBookingRepo struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepo(pool *pgxpool.Pool) *PostgresBookingRepo {
	return &PostgresBookingRepo{db: pool}
}

const insertBookingSQL = `INSERT INTO bookings (name, email, event_date, message)
VALUES ($1, $2, $3, $4)
RETURNING id, name, email, event_date, message, created_at`

func (r *PostgresBookingRepo) Insert(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	row := r.db.QueryRow(ctx, insertBookingSQL,
		booking.Name, booking.Email, booking.EventDate, booking.Message)

	var inserted domain.Booking
	if err := row.Scan(
		&inserted.ID,
		&inserted.Name,
		&inserted.Email,
		&inserted.EventDate,
		&inserted.Message,
		&inserted.CreatedAt,
	); err != nil {
		return domain.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	return inserted, nil
}

func scanImage(row pgx.Row) (domain.GalleryImage, error) {
	var image domain.GalleryImage
	err := row.Scan(
		&image.ID,
		&image.URL,
		&image.Caption,
		&image.DisplayOrder,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	return image, err
}

func scanImages(rows pgx.Rows) ([]domain.GalleryImage, error) {
	var images []domain.GalleryImage
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read images: %w", err)
	}
	return images, nil
}
