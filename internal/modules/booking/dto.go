package booking

import (
	"time"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	RoomID          int64  `json:"room_id" binding:"required" validate:"gt=0"`
	CheckInDate     string `json:"check_in_date" binding:"required" validate:"datetime=2006-01-02"`
	CheckOutDate    string `json:"check_out_date" binding:"required" validate:"datetime=2006-01-02"`
	Adults          int    `json:"adults" validate:"gte=1,lte=20"`
	Children        int    `json:"children" validate:"gte=0,lte=20"`
	SpecialRequests string `json:"special_requests" validate:"max=2000"`
	// CustomerID lets an admin book on behalf of a customer.
	CustomerID int64 `json:"customer_id,omitempty"`
}

type TransitionRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
	Reason *string              `json:"reason"`
}

type CancelRequest struct {
	Reason *string `json:"reason"`
}

type ListQuery struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	HotelID       int64  `form:"hotel_id"`
	Reference     string `form:"reference"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}

type StatsQuery struct {
	HotelID int64  `form:"hotel_id"`
	From    string `form:"from"`
	To      string `form:"to"`
}

// BookingView is a booking together with what the caller may do next.
type BookingView struct {
	domain.Booking
	AllowedTransitions []domain.BookingStatus `json:"allowed_transitions"`
}

type QuoteResponse struct {
	RoomID       int64           `json:"room_id"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Currency     string          `json:"currency"`
	Available    bool            `json:"available"`
	Quote        lifecycle.Quote `json:"quote"`
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
