package admin

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type UserRepository interface {
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	List(ctx context.Context, f repository.UserFilter, p repository.Pagination) ([]domain.User, int64, error)
	CountByRole(ctx context.Context) (map[domain.UserRole]int64, error)
}

type HotelCounter interface {
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	ListAll(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type ReviewRepository interface {
	List(ctx context.Context, hotelID *int64, hidden *bool, p repository.Pagination) ([]domain.Review, int64, error)
	SetHidden(ctx context.Context, id int64, hidden bool) error
}
