package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repository"
)

var (
	fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	admin    = lifecycle.Actor{UserID: 1, Role: domain.RoleAdmin}
)

type fixture struct {
	bookings *MockBookingStore
	refunds  *MockRefundStore
	stats    *MockInvalidator
	notifier *MockNotifier
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(MockBookingStore),
		refunds:  new(MockRefundStore),
		stats:    new(MockInvalidator),
		notifier: new(MockNotifier),
	}
	f.svc = NewService(f.bookings, f.refunds, f.stats, f.notifier).WithClock(func() time.Time { return fixedNow })
	return f
}

func booking(status domain.BookingStatus, ps domain.PaymentStatus) *domain.Booking {
	return &domain.Booking{
		ID:            7,
		CustomerID:    3,
		HotelID:       5,
		RoomID:        10,
		TotalAmount:   decimal.RequireFromString("220.00"),
		Currency:      "EUR",
		Status:        status,
		PaymentStatus: ps,
		Version:       4,
	}
}

func TestMarkPaid_FromPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByID", ctx, int64(7)).Return(booking(domain.BookingConfirmed, domain.PaymentPending), nil)
	f.bookings.On("SaveWithEvent", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PaymentStatus == domain.PaymentPaid && b.Version == 4
	}), mock.MatchedBy(func(ev *domain.BookingStatusEvent) bool {
		return ev.PaymentStatus == domain.PaymentPaid && ev.ToStatus == domain.BookingConfirmed && ev.ActorID == 1
	})).Return(nil)
	f.stats.On("Invalidate", ctx).Return(nil)
	f.notifier.On("BookingChanged", ctx, mock.MatchedBy(func(ev notification.Event) bool {
		return ev.Type == notification.TypeBookingPaymentChanged && ev.BookingID == 7
	})).Return(nil)

	b, err := f.svc.MarkPaid(ctx, admin, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	require.NotNil(t, b.PaidAt)
	assert.Equal(t, fixedNow, *b.PaidAt)
	assert.Nil(t, b.CompletedAt)
	assert.Equal(t, int64(5), b.Version)

	f.bookings.AssertExpectations(t)
	f.stats.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestMarkPaid_AfterCheckoutCompletes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByID", ctx, int64(7)).Return(booking(domain.BookingCheckedOut, domain.PaymentFailed), nil)
	f.bookings.On("SaveWithEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.stats.On("Invalidate", ctx).Return(nil)
	f.notifier.On("BookingChanged", ctx, mock.Anything).Return(nil)

	b, err := f.svc.MarkPaid(ctx, admin, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, b.Status)
	require.NotNil(t, b.CompletedAt)
}

func TestMarkPaid_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
		ps     domain.PaymentStatus
		want   error
	}{
		{"cancelled booking", domain.BookingCancelled, domain.PaymentPending, ErrBookingCancelled},
		{"already paid", domain.BookingConfirmed, domain.PaymentPaid, ErrInvalidPaymentState},
		{"refund pending", domain.BookingConfirmed, domain.PaymentRefundPending, ErrInvalidPaymentState},
		{"refunded", domain.BookingConfirmed, domain.PaymentRefunded, ErrInvalidPaymentState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			f.bookings.On("GetByID", ctx, int64(7)).Return(booking(tt.status, tt.ps), nil)

			_, err := f.svc.MarkPaid(ctx, admin, 7)
			assert.ErrorIs(t, err, tt.want)
			f.bookings.AssertNotCalled(t, "SaveWithEvent", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMarkPaid_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(7)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.MarkPaid(ctx, admin, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkPaid_ConflictPropagates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(7)).Return(booking(domain.BookingPending, domain.PaymentPending), nil)
	f.bookings.On("SaveWithEvent", ctx, mock.Anything, mock.Anything).Return(repository.ErrConflict)

	_, err := f.svc.MarkPaid(ctx, admin, 7)
	assert.ErrorIs(t, err, repository.ErrConflict)
	f.notifier.AssertNotCalled(t, "BookingChanged", mock.Anything, mock.Anything)
}

func TestMarkPaid_NotificationFailureIgnored(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(7)).Return(booking(domain.BookingPending, domain.PaymentPending), nil)
	f.bookings.On("SaveWithEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.stats.On("Invalidate", ctx).Return(errors.New("redis down"))
	f.notifier.On("BookingChanged", ctx, mock.Anything).Return(errors.New("queue down"))

	b, err := f.svc.MarkPaid(ctx, admin, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
}

func TestMarkFailed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(7)).Return(booking(domain.BookingPending, domain.PaymentPending), nil)
	f.bookings.On("SaveWithEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	f.stats.On("Invalidate", ctx).Return(nil)
	f.notifier.On("BookingChanged", ctx, mock.Anything).Return(nil)

	b, err := f.svc.MarkFailed(ctx, admin, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, b.PaymentStatus)
	assert.Nil(t, b.PaidAt)
}

func TestMarkFailed_OnlyFromPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(7)).Return(booking(domain.BookingConfirmed, domain.PaymentPaid), nil)

	_, err := f.svc.MarkFailed(ctx, admin, 7)
	assert.ErrorIs(t, err, ErrInvalidPaymentState)
}

func TestProcessRefunds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reason := "plans changed"
	first := *booking(domain.BookingCancelled, domain.PaymentRefundPending)
	first.CancellationReason = &reason
	second := *booking(domain.BookingCancelled, domain.PaymentRefundPending)
	second.ID = 8

	f.bookings.On("ListByPaymentStatus", ctx, domain.PaymentRefundPending, refundBatchSize).
		Return([]domain.Booking{first, second}, nil)
	f.refunds.On("Execute", ctx, mock.MatchedBy(func(b *domain.Booking) bool { return b.ID == 7 }),
		mock.MatchedBy(func(ev *domain.BookingStatusEvent) bool {
			return ev.PaymentStatus == domain.PaymentRefunded && ev.ActorRole == domain.RoleAdmin
		}),
		mock.MatchedBy(func(r *domain.Refund) bool {
			return r.Amount.Equal(decimal.RequireFromString("220")) && r.Currency == "EUR" && r.Reason == reason
		})).Return(nil)
	f.refunds.On("Execute", ctx, mock.MatchedBy(func(b *domain.Booking) bool { return b.ID == 8 }),
		mock.Anything, mock.Anything).Return(repository.ErrConflict)
	f.stats.On("Invalidate", ctx).Return(nil)
	f.notifier.On("BookingChanged", ctx, mock.Anything).Return(nil)

	res, err := f.svc.ProcessRefunds(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	f.notifier.AssertNumberOfCalls(t, "BookingChanged", 1)
}

func TestProcessRefunds_StorageError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("ListByPaymentStatus", ctx, domain.PaymentRefundPending, refundBatchSize).
		Return([]domain.Booking{*booking(domain.BookingCancelled, domain.PaymentRefundPending)}, nil)
	f.refunds.On("Execute", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.svc.ProcessRefunds(ctx)
	assert.EqualError(t, err, "db down")
}

func TestListRefunds_NormalizesPage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.refunds.On("List", ctx, repository.Pagination{Page: 1, Limit: 20}).
		Return([]domain.Refund{{ID: 1, BookingID: 7}}, int64(1), nil)

	items, total, p, err := f.svc.ListRefunds(ctx, repository.Pagination{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 20, p.Limit)
}
