package payment

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repository"
)

const refundBatchSize = 100

// Service records payment results reported by the payment provider and executes
// refunds flagged by the booking lifecycle.
type Service struct {
	bookings bookingStore
	refunds  refundStore
	stats    statsInvalidator
	notifier notification.Notifier
	clock    func() time.Time
}

func NewService(bookings bookingStore, refunds refundStore, stats statsInvalidator, notifier notification.Notifier) *Service {
	return &Service{
		bookings: bookings,
		refunds:  refunds,
		stats:    stats,
		notifier: notifier,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// MarkPaid records a successful payment. Paying a checked-out booking completes it.
func (s *Service) MarkPaid(ctx context.Context, actor lifecycle.Actor, bookingID int64) (*domain.Booking, error) {
	return s.changePayment(ctx, actor, bookingID, func(b *domain.Booking, now time.Time) error {
		if b.Status == domain.BookingCancelled {
			return ErrBookingCancelled
		}
		if b.PaymentStatus != domain.PaymentPending && b.PaymentStatus != domain.PaymentFailed {
			return ErrInvalidPaymentState
		}
		b.PaymentStatus = domain.PaymentPaid
		b.PaidAt = &now
		if b.Status == domain.BookingCheckedOut && b.CompletedAt == nil {
			b.CompletedAt = &now
		}
		return nil
	})
}

// MarkFailed records a declined payment; the guest may pay again later.
func (s *Service) MarkFailed(ctx context.Context, actor lifecycle.Actor, bookingID int64) (*domain.Booking, error) {
	return s.changePayment(ctx, actor, bookingID, func(b *domain.Booking, _ time.Time) error {
		if b.Status == domain.BookingCancelled {
			return ErrBookingCancelled
		}
		if b.PaymentStatus != domain.PaymentPending {
			return ErrInvalidPaymentState
		}
		b.PaymentStatus = domain.PaymentFailed
		return nil
	})
}

func (s *Service) changePayment(ctx context.Context, actor lifecycle.Actor, bookingID int64, mutate func(*domain.Booking, time.Time) error) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := s.clock()
	next := *b
	if err := mutate(&next, now); err != nil {
		return nil, err
	}
	next.UpdatedAt = now

	ev := &domain.BookingStatusEvent{
		FromStatus:    b.Status,
		ToStatus:      next.Status,
		PaymentStatus: next.PaymentStatus,
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
		CreatedAt:     now,
	}
	if err := s.bookings.SaveWithEvent(ctx, &next, ev); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": next.ID,
		"from":       b.PaymentStatus,
		"to":         next.PaymentStatus,
	}).Info("booking payment status changed")

	s.afterChange(ctx, notification.NewEvent(notification.TypeBookingPaymentChanged, next, b.Status, actor.UserID, actor.Role, nil))
	return &next, nil
}

// ProcessRefunds executes every refund the lifecycle flagged. Bookings changed concurrently
// are skipped and picked up by the next run.
func (s *Service) ProcessRefunds(ctx context.Context) (ProcessRefundsResponse, error) {
	var out ProcessRefundsResponse

	pending, err := s.bookings.ListByPaymentStatus(ctx, domain.PaymentRefundPending, refundBatchSize)
	if err != nil {
		return out, err
	}

	system := lifecycle.SystemActor()
	for i := range pending {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		b := pending[i]
		now := s.clock()
		next := b
		next.PaymentStatus = domain.PaymentRefunded
		next.UpdatedAt = now

		reason := ""
		if b.CancellationReason != nil {
			reason = *b.CancellationReason
		}
		refund := &domain.Refund{
			Amount:      b.TotalAmount,
			Currency:    b.Currency,
			Reason:      reason,
			ProcessedAt: now,
		}
		ev := &domain.BookingStatusEvent{
			FromStatus:    b.Status,
			ToStatus:      b.Status,
			PaymentStatus: domain.PaymentRefunded,
			ActorID:       system.UserID,
			ActorRole:     system.Role,
			CreatedAt:     now,
		}

		err := s.refunds.Execute(ctx, &next, ev, refund)
		switch {
		case err == nil:
			out.Processed++
			s.afterChange(ctx, notification.NewEvent(notification.TypeBookingPaymentChanged, next, b.Status, system.UserID, system.Role, nil))
		case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrDuplicate):
			out.Skipped++
			logrus.WithError(err).WithField("booking_id", b.ID).Warn("refund skipped")
		default:
			return out, err
		}
	}

	if out.Processed > 0 || out.Skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"processed": out.Processed,
			"skipped":   out.Skipped,
		}).Info("refund run finished")
	}
	return out, nil
}

func (s *Service) ListRefunds(ctx context.Context, p repository.Pagination) ([]domain.Refund, int64, repository.Pagination, error) {
	p = p.Normalize()
	items, total, err := s.refunds.List(ctx, p)
	return items, total, p, err
}

func (s *Service) afterChange(ctx context.Context, ev notification.Event) {
	if err := s.stats.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("stats cache invalidation failed")
	}
	if err := s.notifier.BookingChanged(ctx, ev); err != nil {
		logrus.WithError(err).WithField("booking_id", ev.BookingID).Warn("payment notification failed")
	}
}
