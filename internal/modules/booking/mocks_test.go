package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	args := m.Called(ctx, b, ev)
	if args.Error(0) == nil {
		b.ID = 999
		b.Version = 1
		ev.BookingID = b.ID
	}
	return args.Error(0)
}

func (m *MockBookingRepository) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	args := m.Called(ctx, roomID, checkIn, checkOut)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	b := *args.Get(0).(*domain.Booking)
	return &b, args.Error(1)
}

func (m *MockBookingRepository) SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	args := m.Called(ctx, b, ev)
	if args.Error(0) == nil {
		b.Version++
	}
	return args.Error(0)
}

func (m *MockBookingRepository) Query(ctx context.Context, f repository.BookingFilter, p repository.Pagination) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) History(ctx context.Context, bookingID int64) ([]domain.BookingStatusEvent, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingStatusEvent), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) IsOwner(ctx context.Context, hotelID, ownerID int64) (bool, error) {
	args := m.Called(ctx, hotelID, ownerID)
	return args.Bool(0), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, scope string) (lifecycle.Statistics, int64, bool, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(lifecycle.Statistics), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockStatsCache) Set(ctx context.Context, scope string, generation int64, st lifecycle.Statistics) error {
	args := m.Called(ctx, scope, generation, st)
	return args.Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingChanged(ctx context.Context, ev notification.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
