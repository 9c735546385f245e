package lifecycle

import (
	"time"

	"hotelbooking/internal/domain"
)

// Actor is the authenticated principal requesting a transition.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

// SystemActor is used by background sweeps that act with admin rights.
func SystemActor() Actor {
	return Actor{UserID: 0, Role: domain.RoleAdmin}
}

type edge struct {
	from domain.BookingStatus
	to   domain.BookingStatus
}

type rule struct {
	needsReason bool
	guard       func(b domain.Booking, now time.Time) bool
	apply       func(b *domain.Booking, now time.Time, reason *string)
}

var rules = map[edge]rule{
	{domain.BookingPending, domain.BookingConfirmed}: {
		apply: func(b *domain.Booking, now time.Time, _ *string) {
			b.ConfirmedAt = stamp(now)
		},
	},
	{domain.BookingPending, domain.BookingCancelled}: {
		needsReason: true,
		apply:       applyCancel,
	},
	{domain.BookingConfirmed, domain.BookingCancelled}: {
		needsReason: true,
		guard: func(b domain.Booking, now time.Time) bool {
			return now.Before(b.CheckOutDate)
		},
		apply: applyCancel,
	},
	{domain.BookingConfirmed, domain.BookingCheckedIn}: {
		guard: func(b domain.Booking, now time.Time) bool {
			return !now.Before(b.CheckInDate)
		},
		apply: func(b *domain.Booking, now time.Time, _ *string) {
			b.CheckedInAt = stamp(now)
		},
	},
	{domain.BookingConfirmed, domain.BookingNoShow}: {
		guard: func(b domain.Booking, now time.Time) bool {
			return now.After(b.CheckInDate) && b.CheckedInAt == nil
		},
		apply: func(b *domain.Booking, now time.Time, _ *string) {
			b.NoShowAt = stamp(now)
		},
	},
	{domain.BookingCheckedIn, domain.BookingCheckedOut}: {
		guard: stayOver,
		apply: applyCheckOut,
	},
	// Front desk closing a stay whose arrival was never recorded.
	{domain.BookingConfirmed, domain.BookingCheckedOut}: {
		guard: stayOver,
		apply: applyCheckOut,
	},
}

var staff = map[domain.UserRole]bool{
	domain.RoleAdmin:      true,
	domain.RoleHotelOwner: true,
}

// permissions is keyed by transition; customers may only withdraw a pending request.
var permissions = map[edge]map[domain.UserRole]bool{
	{domain.BookingPending, domain.BookingConfirmed}: staff,
	{domain.BookingPending, domain.BookingCancelled}: {
		domain.RoleAdmin:      true,
		domain.RoleHotelOwner: true,
		domain.RoleCustomer:   true,
	},
	{domain.BookingConfirmed, domain.BookingCancelled}:  staff,
	{domain.BookingConfirmed, domain.BookingCheckedIn}:  staff,
	{domain.BookingConfirmed, domain.BookingNoShow}:     staff,
	{domain.BookingCheckedIn, domain.BookingCheckedOut}: staff,
	{domain.BookingConfirmed, domain.BookingCheckedOut}: staff,
}

func applyCancel(b *domain.Booking, now time.Time, reason *string) {
	r := *reason
	b.CancellationReason = &r
	b.CancelledAt = stamp(now)
	if b.PaymentStatus == domain.PaymentPaid {
		b.PaymentStatus = domain.PaymentRefundPending
	}
}

func stayOver(b domain.Booking, now time.Time) bool {
	return !now.Before(b.CheckOutDate)
}

func applyCheckOut(b *domain.Booking, now time.Time, _ *string) {
	b.CheckedOutAt = stamp(now)
	if b.PaymentStatus == domain.PaymentPaid {
		b.CompletedAt = stamp(now)
	}
}

func stamp(now time.Time) *time.Time {
	t := now
	return &t
}

// IsLegal reports whether from -> to appears in the transition table, ignoring roles and guards.
func IsLegal(from, to domain.BookingStatus) bool {
	_, ok := rules[edge{from, to}]
	return ok
}

// ApplyStatusTransition validates target against the transition table, the actor's role
// and the time guards, and returns the updated booking. The input is never modified.
func ApplyStatusTransition(b domain.Booking, target domain.BookingStatus, actor Actor, reason *string, now time.Time) (domain.Booking, error) {
	from := b.Status

	if !IsKnownStatus(target) {
		return domain.Booking{}, transitionError(from, target, ErrInvalidTransition)
	}
	if IsTerminal(from) {
		return domain.Booking{}, transitionError(from, target, ErrTerminalState)
	}

	e := edge{from, target}
	r, ok := rules[e]
	if !ok {
		return domain.Booking{}, transitionError(from, target, ErrInvalidTransition)
	}
	if !permissions[e][actor.Role] {
		return domain.Booking{}, transitionError(from, target, ErrUnauthorized)
	}
	if r.needsReason && reason == nil {
		return domain.Booking{}, transitionError(from, target, ErrMissingReason)
	}
	if r.guard != nil && !r.guard(b, now) {
		return domain.Booking{}, transitionError(from, target, ErrInvalidTransition)
	}

	next := b
	next.Status = target
	next.UpdatedAt = now
	r.apply(&next, now, reason)
	return next, nil
}

// AllowedTargets lists the statuses role can move b to at time now, in lifecycle order.
func AllowedTargets(b domain.Booking, role domain.UserRole, now time.Time) []domain.BookingStatus {
	if IsTerminal(b.Status) {
		return []domain.BookingStatus{}
	}
	out := make([]domain.BookingStatus, 0, 2)
	for _, to := range AllStatuses() {
		e := edge{b.Status, to}
		r, ok := rules[e]
		if !ok || !permissions[e][role] {
			continue
		}
		if r.guard != nil && !r.guard(b, now) {
			continue
		}
		out = append(out, to)
	}
	return out
}
