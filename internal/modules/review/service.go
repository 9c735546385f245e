package review

import (
	"context"
	"errors"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review *domain.Review) error
	List(ctx context.Context, hotelID *int64, hidden *bool, p repository.Pagination) ([]domain.Review, int64, error)
}

type Service struct {
	reviews  ReviewStore
	bookings BookingGate
}

func NewService(reviews ReviewStore, bookings BookingGate) *Service {
	return &Service{reviews: reviews, bookings: bookings}
}

// Create stores a guest review. Only the booking's customer may review, once, after checkout.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || req.BookingID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReviewNotAllowed
	}
	if err != nil {
		return nil, err
	}
	if b.CustomerID != userID {
		return nil, ErrReviewNotAllowed
	}
	if b.Status != domain.BookingCheckedOut && b.Status != domain.BookingCompleted {
		return nil, ErrReviewNotAllowed
	}

	bookingID := b.ID
	rv := &domain.Review{
		HotelID:   b.HotelID,
		UserID:    userID,
		BookingID: &bookingID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

// ListVisible returns the reviews of a hotel that moderators have not hidden.
func (s *Service) ListVisible(ctx context.Context, hotelID int64, p repository.Pagination) ([]domain.Review, int64, repository.Pagination, error) {
	p = p.Normalize()
	hidden := false
	items, total, err := s.reviews.List(ctx, &hotelID, &hidden, p)
	return items, total, p, err
}
