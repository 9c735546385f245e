package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingChanged(ctx context.Context, ev Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func sampleBooking() domain.Booking {
	return domain.Booking{
		ID:            10,
		ReferenceCode: "ref-10",
		CustomerID:    3,
		HotelID:       5,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPaid,
		UpdatedAt:     time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewEvent(t *testing.T) {
	reason := "guest request"
	ev := NewEvent(TypeBookingStatusChanged, sampleBooking(), domain.BookingPending, 7, domain.RoleHotelOwner, &reason)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, int64(10), ev.BookingID)
	assert.Equal(t, int64(5), ev.HotelID)
	assert.Equal(t, domain.BookingPending, ev.FromStatus)
	assert.Equal(t, domain.BookingConfirmed, ev.Status)
	assert.Equal(t, &reason, ev.Reason)
	assert.Equal(t, sampleBooking().UpdatedAt, ev.OccurredAt)
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	ev := NewEvent(TypeBookingCreated, sampleBooking(), "", 3, domain.RoleCustomer, nil)
	ok := new(mockNotifier)
	failing := new(mockNotifier)
	ok.On("BookingChanged", mock.Anything, ev).Return(nil)
	failing.On("BookingChanged", mock.Anything, ev).Return(errors.New("redis down"))

	err := Fanout{failing, ok}.BookingChanged(context.Background(), ev)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	ok.AssertExpectations(t)
	failing.AssertExpectations(t)
}

func TestFanout_Empty(t *testing.T) {
	assert.NoError(t, Fanout{}.BookingChanged(context.Background(), Event{}))
	assert.NoError(t, Nop{}.BookingChanged(context.Background(), Event{}))
}
