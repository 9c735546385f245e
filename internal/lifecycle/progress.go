package lifecycle

import (
	"time"

	"hotelbooking/internal/domain"
)

type StepState string

const (
	StepFinish  StepState = "finish"
	StepProcess StepState = "process"
	StepWait    StepState = "wait"
	StepError   StepState = "error"
)

type StepKey string

const (
	StepCreated   StepKey = "created"
	StepConfirmed StepKey = "confirmed"
	StepCancelled StepKey = "cancelled"
	StepCheckIn   StepKey = "check_in"
	StepCheckOut  StepKey = "check_out"
	StepCompleted StepKey = "completed"
	StepNoShow    StepKey = "no_show"
)

// ProgressStep is one milestone of a booking's timeline.
type ProgressStep struct {
	Key   StepKey    `json:"key"`
	State StepState  `json:"state"`
	At    *time.Time `json:"at,omitempty"`
}

// DeriveProgressSteps builds the milestone timeline shown next to a booking.
// Cancelled bookings collapse to created + cancelled, no-shows to created + confirmed + no_show.
func DeriveProgressSteps(b domain.Booking, now time.Time) []ProgressStep {
	created := ProgressStep{Key: StepCreated, State: StepFinish, At: timePtr(b.CreatedAt)}

	switch b.Status {
	case domain.BookingCancelled:
		return []ProgressStep{
			created,
			{Key: StepCancelled, State: StepError, At: b.CancelledAt},
		}
	case domain.BookingNoShow:
		return []ProgressStep{
			created,
			{Key: StepConfirmed, State: StepFinish, At: b.ConfirmedAt},
			{Key: StepNoShow, State: StepError, At: b.NoShowAt},
		}
	}

	confirmed := ProgressStep{Key: StepConfirmed, State: StepWait, At: b.ConfirmedAt}
	checkIn := ProgressStep{Key: StepCheckIn, State: StepWait, At: b.CheckedInAt}
	checkOut := ProgressStep{Key: StepCheckOut, State: StepWait, At: b.CheckedOutAt}
	completed := ProgressStep{Key: StepCompleted, State: StepWait, At: b.CompletedAt}

	switch b.Status {
	case domain.BookingPending:
		confirmed.State = StepProcess
	case domain.BookingConfirmed:
		confirmed.State = StepFinish
		if !now.Before(b.CheckInDate) {
			checkIn.State = StepProcess
		}
	case domain.BookingCheckedIn:
		confirmed.State = StepFinish
		checkIn.State = StepFinish
		if !now.Before(b.CheckOutDate) {
			checkOut.State = StepProcess
		}
	case domain.BookingCheckedOut:
		confirmed.State = StepFinish
		checkIn.State = StepFinish
		checkOut.State = StepFinish
		if b.CompletedAt != nil {
			completed.State = StepFinish
		} else {
			completed.State = StepProcess
		}
	case domain.BookingCompleted:
		confirmed.State = StepFinish
		checkIn.State = StepFinish
		checkOut.State = StepFinish
		completed.State = StepFinish
	}

	return []ProgressStep{created, confirmed, checkIn, checkOut, completed}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
