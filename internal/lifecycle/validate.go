package lifecycle

import (
	"fmt"

	"hotelbooking/internal/domain"
)

// ValidateBooking checks the record-level invariants of a booking.
func ValidateBooking(b domain.Booking) error {
	if !b.CheckOutDate.After(b.CheckInDate) || Nights(b.CheckInDate, b.CheckOutDate) < 1 {
		return fmt.Errorf("%w: %v", ErrInconsistent, ErrInvalidStayDates)
	}
	if !IsKnownStatus(b.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInconsistent, b.Status)
	}
	if _, err := ParsePaymentStatus(string(b.PaymentStatus)); err != nil {
		return fmt.Errorf("%w: %v", ErrInconsistent, err)
	}
	if b.Status == domain.BookingCancelled && b.PaymentStatus == domain.PaymentPaid {
		return fmt.Errorf("%w: cancelled booking cannot stay paid without a pending refund", ErrInconsistent)
	}
	if (b.Status == domain.BookingCheckedIn || b.Status == domain.BookingCheckedOut) && b.ConfirmedAt == nil {
		return fmt.Errorf("%w: %s booking was never confirmed", ErrInconsistent, b.Status)
	}
	if !b.Subtotal.Add(b.Taxes).Sub(b.Discount).Equal(b.TotalAmount) {
		return fmt.Errorf("%w: total %s != subtotal %s + taxes %s - discount %s",
			ErrInconsistent, b.TotalAmount, b.Subtotal, b.Taxes, b.Discount)
	}
	return nil
}
