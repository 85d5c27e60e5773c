package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/domain"
	"github.com/NovaAI-innovation/backend12/internal/repository"
)

// BookingService records booking requests submitted through the public site.
type BookingService struct {
	repo   repository.BookingRepository
	logger *zap.Logger
}

func NewBookingService(repo repository.BookingRepository, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, logger: logger}
}

// Submit validates and stores one booking request.
func (s *BookingService) Submit(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	booking.Name = strings.TrimSpace(booking.Name)
	booking.Email = strings.ToLower(strings.TrimSpace(booking.Email))
	booking.Message = strings.TrimSpace(booking.Message)

	if booking.Name == "" {
		return domain.Booking{}, fmt.Errorf("%w: name is required", ErrNoInput)
	}
	if booking.Email == "" || !strings.Contains(booking.Email, "@") {
		return domain.Booking{}, fmt.Errorf("%w: a valid email is required", ErrNoInput)
	}
	if booking.EventDate.IsZero() {
		return domain.Booking{}, fmt.Errorf("%w: event date is required", ErrNoInput)
	}

	created, err := s.repo.Insert(ctx, booking)
	if err != nil {
		return domain.Booking{}, err
	}

	s.logger.Info("booking submitted", zap.Int64("booking_id", created.ID))
	return created, nil
}
