package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	return m.Called(ctx, id, blocked).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter, p repository.Pagination) ([]domain.User, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[domain.UserRole]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.UserRole]int64), args.Error(1)
}

type MockHotelCounter struct {
	mock.Mock
}

func (m *MockHotelCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListAll(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) List(ctx context.Context, hotelID *int64, hidden *bool, p repository.Pagination) ([]domain.Review, int64, error) {
	args := m.Called(ctx, hotelID, hidden, p)
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	return m.Called(ctx, id, hidden).Error(0)
}

type mocks struct {
	users    *MockUserRepository
	hotels   *MockHotelCounter
	bookings *MockBookingRepository
	reviews  *MockReviewRepository
}

var fixedNow = time.Date(2026, 6, 15, 17, 30, 0, 0, time.UTC)

func newService() (*Service, mocks) {
	m := mocks{
		users:    new(MockUserRepository),
		hotels:   new(MockHotelCounter),
		bookings: new(MockBookingRepository),
		reviews:  new(MockReviewRepository),
	}
	svc := NewService(m.users, m.hotels, m.bookings, m.reviews).WithClock(func() time.Time { return fixedNow })
	return svc, m
}

func TestDashboard(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()

	m.users.On("CountByRole", ctx).Return(map[domain.UserRole]int64{
		domain.RoleAdmin:      1,
		domain.RoleHotelOwner: 2,
		domain.RoleCustomer:   7,
	}, nil)
	m.hotels.On("Count", ctx).Return(int64(3), nil)
	m.bookings.On("CountCreatedBetween", ctx,
		time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		mock.MatchedBy(func(to time.Time) bool {
			return to.Year() == 2026 && to.Day() == 15 && to.Hour() == 23 && to.Minute() == 59
		}),
	).Return(int64(4), nil)
	m.bookings.On("ListAll", ctx, repository.BookingFilter{}).Return([]domain.Booking{
		{Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid, TotalAmount: decimal.NewFromInt(100)},
		{Status: domain.BookingCancelled, PaymentStatus: domain.PaymentRefundPending, TotalAmount: decimal.NewFromInt(50)},
		{Status: domain.BookingPending, PaymentStatus: domain.PaymentPending, TotalAmount: decimal.NewFromInt(70)},
	}, nil)

	res, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.TotalUsers)
	assert.Equal(t, int64(3), res.TotalHotels)
	assert.Equal(t, int64(4), res.BookingsToday)
	assert.Equal(t, 3, res.Bookings.Total)
	assert.Equal(t, 1, res.Bookings.Cancelled)
	assert.True(t, res.Bookings.TotalRevenue.Equal(decimal.NewFromInt(100)))
}

func TestListUsers(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	blocked := true

	m.users.On("List", ctx, repository.UserFilter{Role: domain.RoleCustomer, Search: "ann", Blocked: &blocked},
		repository.Pagination{Page: 2, Limit: 20}).
		Return([]domain.User{{ID: 9}}, int64(21), nil)

	users, total, p, err := svc.ListUsers(ctx, UserListFilter{Role: "customer", Query: "ann", Blocked: &blocked, Page: 2})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, int64(21), total)
	assert.Equal(t, 2, p.Page)
}

func TestListUsers_InvalidRole(t *testing.T) {
	svc, _ := newService()
	_, _, _, err := svc.ListUsers(context.Background(), UserListFilter{Role: "studio_owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSetUserBlocked(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetUserBlocked(ctx, 1, 1, true, "spam"), ErrSelfBlock)

	m.users.On("SetBlocked", ctx, int64(5), true).Return(nil)
	require.NoError(t, svc.SetUserBlocked(ctx, 1, 5, true, "spam"))

	m.users.On("SetBlocked", ctx, int64(6), false).Return(repository.ErrNotFound)
	assert.ErrorIs(t, svc.SetUserBlocked(ctx, 1, 6, false, ""), repository.ErrNotFound)
}

func TestReviewModerationRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, m := newService()
	tokens := jwt.New("test-secret", time.Hour)

	r := gin.New()
	api := r.Group("/api/v1", middleware.JWTAuth(tokens))
	NewHandler(svc).RegisterRoutes(api)

	m.reviews.On("SetHidden", mock.Anything, int64(3), true).Return(nil)
	m.reviews.On("SetHidden", mock.Anything, int64(4), false).Return(repository.ErrNotFound)

	do := func(role domain.UserRole, path string) *httptest.ResponseRecorder {
		token, err := tokens.GenerateToken(1, role)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(domain.RoleAdmin, "/api/v1/admin/reviews/3/hide")
	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			IsHidden bool `json:"is_hidden"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.IsHidden)

	assert.Equal(t, http.StatusNotFound, do(domain.RoleAdmin, "/api/v1/admin/reviews/4/show").Code)
	assert.Equal(t, http.StatusForbidden, do(domain.RoleHotelOwner, "/api/v1/admin/reviews/3/hide").Code)
}
