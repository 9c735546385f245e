package payment

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"
)

type bookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error
	ListByPaymentStatus(ctx context.Context, ps domain.PaymentStatus, limit int) ([]domain.Booking, error)
}

type refundStore interface {
	Execute(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent, refund *domain.Refund) error
	List(ctx context.Context, p repository.Pagination) ([]domain.Refund, int64, error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context) error
}
