package admin

import (
	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
)

type DashboardResponse struct {
	UsersByRole   map[domain.UserRole]int64 `json:"users_by_role"`
	TotalUsers    int64                     `json:"total_users"`
	TotalHotels   int64                     `json:"total_hotels"`
	BookingsToday int64                     `json:"bookings_today"`
	Bookings      lifecycle.Statistics      `json:"bookings"`
}

type UserListFilter struct {
	Role    string `form:"role"`
	Blocked *bool  `form:"blocked"`
	Query   string `form:"q"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

type ReviewListFilter struct {
	HotelID *int64 `form:"hotel_id"`
	Hidden  *bool  `form:"hidden"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

type BlockUserRequest struct {
	Reason string `json:"reason"`
}
