package lifecycle

import (
	"fmt"
	"strings"

	"hotelbooking/internal/domain"
)

// AllStatuses lists every booking status in lifecycle order.
func AllStatuses() []domain.BookingStatus {
	return []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingConfirmed,
		domain.BookingCheckedIn,
		domain.BookingCheckedOut,
		domain.BookingCompleted,
		domain.BookingNoShow,
		domain.BookingCancelled,
	}
}

func AllPaymentStatuses() []domain.PaymentStatus {
	return []domain.PaymentStatus{
		domain.PaymentPending,
		domain.PaymentPaid,
		domain.PaymentFailed,
		domain.PaymentRefundPending,
		domain.PaymentRefunded,
	}
}

func ParseStatus(s string) (domain.BookingStatus, error) {
	st := domain.BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	if !IsKnownStatus(st) {
		return "", fmt.Errorf("unknown booking status: %q", s)
	}
	return st, nil
}

func ParsePaymentStatus(s string) (domain.PaymentStatus, error) {
	ps := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllPaymentStatuses() {
		if ps == known {
			return ps, nil
		}
	}
	return "", fmt.Errorf("unknown payment status: %q", s)
}

func IsKnownStatus(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled,
		domain.BookingCheckedIn, domain.BookingCheckedOut, domain.BookingNoShow,
		domain.BookingCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave s.
func IsTerminal(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingCancelled, domain.BookingCheckedOut, domain.BookingNoShow, domain.BookingCompleted:
		return true
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCheckedIn:
		return false
	}
	return false
}

// HoldsRoom reports whether a booking in status s still occupies its room for availability checks.
func HoldsRoom(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCheckedIn:
		return true
	}
	return false
}
