package domain

import "time"

// Booking records a booking request submitted through the public site.
type Booking struct {
	ID        int64
	Name      string
	Email     string
	EventDate time.Time
	Message   string
	CreatedAt time.Time
}
