package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingNoShow     BookingStatus = "no_show"
	BookingCompleted  BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentFailed        PaymentStatus = "failed"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentRefundPending PaymentStatus = "refund_pending"
)

const DefaultCurrency = "USD"

// Booking is one reservation of a room for a date range by a customer.
// Version is bumped on every successful save and guards concurrent writers.
type Booking struct {
	ID            int64  `json:"id"`
	ReferenceCode string `json:"reference_code"`
	CustomerID    int64  `json:"customer_id"`
	HotelID       int64  `json:"hotel_id"`
	RoomID        int64  `json:"room_id"`

	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Adults       int       `json:"adults"`
	Children     int       `json:"children"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	Taxes       decimal.Decimal `json:"taxes"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`

	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	SpecialRequests    string  `json:"special_requests,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	NoShowAt     *time.Time `json:"no_show_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`

	Version int64 `json:"version"`
}

