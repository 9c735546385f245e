package worker

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/payment"
	"hotelbooking/internal/repository"
)

const noShowBatchSize = 200

type dueLister interface {
	ListDueNoShow(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error)
}

type transitioner interface {
	TransitionBooking(ctx context.Context, actor lifecycle.Actor, id int64, target domain.BookingStatus, reason *string) (*booking.BookingView, error)
}

type refundProcessor interface {
	ProcessRefunds(ctx context.Context) (payment.ProcessRefundsResponse, error)
}

type SweepResult struct {
	NoShows        int
	NoShowFailures int
	RefundsDone    int
	RefundsSkipped int
}

// Sweeper marks overdue arrivals as no_show and executes pending refunds.
type Sweeper struct {
	bookings    dueLister
	transitions transitioner
	refunds     refundProcessor
	interval    time.Duration
	grace       time.Duration
	clock       func() time.Time
}

func NewSweeper(bookings dueLister, transitions transitioner, refunds refundProcessor, interval, grace time.Duration) *Sweeper {
	return &Sweeper{
		bookings:    bookings,
		transitions: transitions,
		refunds:     refunds,
		interval:    interval,
		grace:       grace,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

func (w *Sweeper) WithClock(clock func() time.Time) *Sweeper {
	w.clock = clock
	return w
}

// Start runs a sweep every interval until ctx is cancelled.
func (w *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.WithField("interval", w.interval.String()).Info("booking sweeper started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("booking sweeper stopped")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logrus.WithError(err).Error("booking sweep failed")
			}
		}
	}
}

// RunOnce performs a single sweep. Per-booking failures are logged and counted.
func (w *Sweeper) RunOnce(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	cutoff := w.clock().Add(-w.grace)
	due, err := w.bookings.ListDueNoShow(ctx, cutoff, noShowBatchSize)
	if err != nil {
		return res, err
	}

	system := lifecycle.SystemActor()
	for _, b := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		_, err := w.transitions.TransitionBooking(ctx, system, b.ID, domain.BookingNoShow, nil)
		switch {
		case err == nil:
			res.NoShows++
		case errors.Is(err, repository.ErrConflict):
			logrus.WithField("booking_id", b.ID).Debug("no-show skipped, booking changed concurrently")
			res.NoShowFailures++
		default:
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("failed to mark booking as no-show")
			res.NoShowFailures++
		}
	}

	refunds, err := w.refunds.ProcessRefunds(ctx)
	if err != nil {
		return res, err
	}
	res.RefundsDone = refunds.Processed
	res.RefundsSkipped = refunds.Skipped

	if len(due) > 0 || refunds.Processed > 0 {
		logrus.WithFields(logrus.Fields{
			"no_shows":        res.NoShows,
			"no_show_failed":  res.NoShowFailures,
			"refunds":         res.RefundsDone,
			"refunds_skipped": res.RefundsSkipped,
		}).Info("booking sweep completed")
	}
	return res, nil
}
