package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hotelbooking/internal/domain"
)

const (
	TypeBookingCreated        = "booking.created"
	TypeBookingStatusChanged  = "booking.status_changed"
	TypeBookingPaymentChanged = "booking.payment_changed"
)

// Event describes one change to a booking as published to subscribers.
type Event struct {
	ID            string               `json:"id"`
	Type          string               `json:"type"`
	BookingID     int64                `json:"booking_id"`
	ReferenceCode string               `json:"reference_code"`
	CustomerID    int64                `json:"customer_id"`
	HotelID       int64                `json:"hotel_id"`
	FromStatus    domain.BookingStatus `json:"from_status,omitempty"`
	Status        domain.BookingStatus `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	ActorID       int64                `json:"actor_id"`
	ActorRole     domain.UserRole      `json:"actor_role"`
	Reason        *string              `json:"reason,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// NewEvent builds an event from the booking state after the change.
func NewEvent(eventType string, b domain.Booking, from domain.BookingStatus, actorID int64, actorRole domain.UserRole, reason *string) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		CustomerID:    b.CustomerID,
		HotelID:       b.HotelID,
		FromStatus:    from,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		ActorID:       actorID,
		ActorRole:     actorRole,
		Reason:        reason,
		OccurredAt:    b.UpdatedAt,
	}
}

type Notifier interface {
	BookingChanged(ctx context.Context, ev Event) error
}

// Fanout delivers an event to every notifier and joins their errors.
type Fanout []Notifier

func (f Fanout) BookingChanged(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range f {
		if err := n.BookingChanged(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) BookingChanged(context.Context, Event) error { return nil }
