package domain

import "time"

// GalleryImage is one row of the gallery_images table. URL points at the
// blob store copy of the asset; DisplayOrder drives the public gallery sort.
type GalleryImage struct {
	ID           int64
	URL          string
	Caption      *string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
