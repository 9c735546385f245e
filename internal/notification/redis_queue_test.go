package notification

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
)

func newTestQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisQueue(client, "booking_events"), srv
}

func TestRedisQueue_PushesEventPayload(t *testing.T) {
	q, srv := newTestQueue(t)
	ctx := context.Background()
	reason := "guest request"

	first := NewEvent(TypeBookingCreated, sampleBooking(), "", 3, domain.RoleCustomer, nil)
	second := NewEvent(TypeBookingStatusChanged, sampleBooking(), domain.BookingPending, 7, domain.RoleHotelOwner, &reason)
	require.NoError(t, q.BookingChanged(ctx, first))
	require.NoError(t, q.BookingChanged(ctx, second))

	items, err := srv.List("booking_events")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// LPUSH keeps the newest event at the head
	var got Event
	require.NoError(t, json.Unmarshal([]byte(items[0]), &got))
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, TypeBookingStatusChanged, got.Type)
	assert.Equal(t, int64(10), got.BookingID)
	assert.Equal(t, domain.BookingPending, got.FromStatus)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	require.NotNil(t, got.Reason)
	assert.Equal(t, reason, *got.Reason)
	assert.True(t, got.OccurredAt.Equal(second.OccurredAt))

	var older Event
	require.NoError(t, json.Unmarshal([]byte(items[1]), &older))
	assert.Equal(t, first.ID, older.ID)
	assert.Nil(t, older.Reason)
}

func TestRedisQueue_UnavailableReturnsError(t *testing.T) {
	q, srv := newTestQueue(t)
	srv.Close()

	ev := NewEvent(TypeBookingCreated, sampleBooking(), "", 3, domain.RoleCustomer, nil)
	err := q.BookingChanged(context.Background(), ev)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ev.ID)
}
