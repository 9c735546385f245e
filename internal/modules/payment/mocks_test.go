package payment

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repository"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	b := *args.Get(0).(*domain.Booking)
	return &b, args.Error(1)
}

func (m *MockBookingStore) SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	args := m.Called(ctx, b, ev)
	if args.Error(0) == nil {
		b.Version++
	}
	return args.Error(0)
}

func (m *MockBookingStore) ListByPaymentStatus(ctx context.Context, ps domain.PaymentStatus, limit int) ([]domain.Booking, error) {
	args := m.Called(ctx, ps, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRefundStore struct {
	mock.Mock
}

func (m *MockRefundStore) Execute(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent, refund *domain.Refund) error {
	args := m.Called(ctx, b, ev, refund)
	return args.Error(0)
}

func (m *MockRefundStore) List(ctx context.Context, p repository.Pagination) ([]domain.Refund, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]domain.Refund), args.Get(1).(int64), args.Error(2)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingChanged(ctx context.Context, ev notification.Event) error {
	return m.Called(ctx, ev).Error(0)
}
