package booking

import (
	"context"
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/repository"
)

// BookingRepository is the storage collaborator of the lifecycle.
// SaveWithEvent must fail with repository.ErrConflict when the booking changed since it was loaded.
type BookingRepository interface {
	CreateIfAvailable(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error
	CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error
	Query(ctx context.Context, f repository.BookingFilter, p repository.Pagination) ([]domain.Booking, int64, error)
	ListAll(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	History(ctx context.Context, bookingID int64) ([]domain.BookingStatusEvent, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type HotelRepository interface {
	IsOwner(ctx context.Context, hotelID, ownerID int64) (bool, error)
}

type StatsCache interface {
	Get(ctx context.Context, scope string) (st lifecycle.Statistics, generation int64, ok bool, err error)
	Set(ctx context.Context, scope string, generation int64, st lifecycle.Statistics) error
	Invalidate(ctx context.Context) error
}
