package lifecycle

import (
	"github.com/shopspring/decimal"

	"hotelbooking/internal/domain"
)

// Statistics summarises a set of bookings for dashboards and reports.
type Statistics struct {
	Total        int                          `json:"total"`
	Pending      int                          `json:"pending"`
	Confirmed    int                          `json:"confirmed"`
	Cancelled    int                          `json:"cancelled"`
	Completed    int                          `json:"completed"`
	ByStatus     map[domain.BookingStatus]int `json:"by_status"`
	TotalRevenue decimal.Decimal              `json:"total_revenue"`
}

func emptyStatistics() Statistics {
	byStatus := make(map[domain.BookingStatus]int, len(AllStatuses()))
	for _, s := range AllStatuses() {
		byStatus[s] = 0
	}
	return Statistics{ByStatus: byStatus, TotalRevenue: decimal.Zero}
}

// ComputeStatistics counts bookings per status and sums revenue from paid,
// non-cancelled bookings. Unknown statuses count toward Total only.
func ComputeStatistics(bookings []domain.Booking) Statistics {
	st := emptyStatistics()
	for _, b := range bookings {
		st.Total++
		if _, ok := st.ByStatus[b.Status]; ok {
			st.ByStatus[b.Status]++
		}
		if b.Status != domain.BookingCancelled && b.PaymentStatus == domain.PaymentPaid {
			st.TotalRevenue = st.TotalRevenue.Add(b.TotalAmount)
		}
	}

	st.Pending = st.ByStatus[domain.BookingPending]
	st.Confirmed = st.ByStatus[domain.BookingConfirmed]
	st.Cancelled = st.ByStatus[domain.BookingCancelled]
	st.Completed = st.ByStatus[domain.BookingCompleted]
	return st
}
