package lifecycle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
)

func TestNights(t *testing.T) {
	in := time.Date(2026, 7, 1, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, Nights(in, time.Date(2026, 7, 2, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, Nights(in, time.Date(2026, 7, 4, 11, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, Nights(in, time.Date(2026, 7, 1, 23, 0, 0, 0, time.UTC)))
}

func TestQuoteStay(t *testing.T) {
	in := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)

	q, err := QuoteStay(decimal.RequireFromString("99.99"), in, out,
		decimal.RequireFromString("0.12"), decimal.RequireFromString("10"))

	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, "299.97", q.Subtotal.StringFixed(2))
	assert.Equal(t, "36.00", q.Taxes.StringFixed(2))
	assert.Equal(t, "325.97", q.Total.StringFixed(2))
	assert.True(t, q.Subtotal.Add(q.Taxes).Sub(q.Discount).Equal(q.Total))
}

func TestQuoteStay_Rejects(t *testing.T) {
	in := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(100)

	_, err := QuoteStay(price, in, in, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidStayDates)

	_, err = QuoteStay(price, in, in.Add(-24*time.Hour), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidStayDates)

	_, err = QuoteStay(price, in, in.AddDate(0, 0, 1), decimal.Zero, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = QuoteStay(price.Neg(), in, in.AddDate(0, 0, 1), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestValidateBooking(t *testing.T) {
	ok := futureStay(domain.BookingPending)
	assert.NoError(t, ValidateBooking(ok))

	swapped := ok
	swapped.CheckInDate, swapped.CheckOutDate = ok.CheckOutDate, ok.CheckInDate
	assert.ErrorIs(t, ValidateBooking(swapped), ErrInconsistent)

	paidCancel := ok
	paidCancel.Status = "cancelled"
	paidCancel.PaymentStatus = "paid"
	assert.ErrorIs(t, ValidateBooking(paidCancel), ErrInconsistent)

	skipped := ok
	skipped.Status = "checked_in"
	assert.ErrorIs(t, ValidateBooking(skipped), ErrInconsistent)

	badTotal := ok
	badTotal.TotalAmount = decimal.NewFromInt(1)
	assert.ErrorIs(t, ValidateBooking(badTotal), ErrInconsistent)
}
