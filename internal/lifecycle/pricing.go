package lifecycle

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Quote is the priced breakdown of a stay.
type Quote struct {
	Nights   int             `json:"nights"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Taxes    decimal.Decimal `json:"taxes"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Nights counts calendar days between check-in and check-out in the dates' own location.
func Nights(checkIn, checkOut time.Time) int {
	in := now.With(checkIn).BeginningOfDay()
	out := now.With(checkOut.In(checkIn.Location())).BeginningOfDay()
	// Hours rather than days keeps DST days from rounding down.
	return int((out.Sub(in).Hours() + 12) / 24)
}

// QuoteStay prices a stay: subtotal = price × nights, taxes = subtotal × taxRate,
// total = subtotal + taxes − discount.
func QuoteStay(pricePerNight decimal.Decimal, checkIn, checkOut time.Time, taxRate, discount decimal.Decimal) (Quote, error) {
	nights := Nights(checkIn, checkOut)
	if !checkOut.After(checkIn) || nights < 1 {
		return Quote{}, ErrInvalidStayDates
	}
	if pricePerNight.IsNegative() || taxRate.IsNegative() || discount.IsNegative() {
		return Quote{}, ErrInvalidAmount
	}

	subtotal := pricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(moneyScale)
	taxes := subtotal.Mul(taxRate).Round(moneyScale)
	gross := subtotal.Add(taxes)
	if discount.GreaterThan(gross) {
		return Quote{}, ErrInvalidAmount
	}

	return Quote{
		Nights:   nights,
		Subtotal: subtotal,
		Taxes:    taxes,
		Discount: discount.Round(moneyScale),
		Total:    gross.Sub(discount).Round(moneyScale),
	}, nil
}
