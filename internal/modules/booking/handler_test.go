package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/cache"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
)

type apiEnv struct {
	router   *gin.Engine
	jwt      *jwt.Service
	owner    *domain.User
	customer *domain.User
	room     *domain.Room
}

func setupAPI(t *testing.T) apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	hotels := repository.NewHotelRepository(db)
	rooms := repository.NewRoomRepository(db)

	owner := &domain.User{Email: "owner@example.com", PasswordHash: "x", Role: domain.RoleHotelOwner}
	require.NoError(t, users.Create(ctx, owner))
	customer := &domain.User{Email: "guest@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(ctx, customer))

	hotel := &domain.Hotel{OwnerID: owner.ID, Name: "Harbour View", City: "Porto", IsActive: true}
	require.NoError(t, hotels.Create(ctx, hotel))
	room := &domain.Room{
		HotelID:       hotel.ID,
		Number:        "12",
		RoomType:      domain.RoomDouble,
		Capacity:      2,
		PricePerNight: decimal.NewFromInt(80),
		Currency:      "EUR",
		IsActive:      true,
	}
	require.NoError(t, rooms.Create(ctx, room))

	svc := NewService(
		repository.NewBookingRepository(db),
		rooms,
		hotels,
		cache.Noop{},
		notification.Nop{},
		Pricing{TaxRate: decimal.RequireFromString("0.10"), Currency: "EUR"},
	).WithClock(func() time.Time { return clock })

	jwtService := jwt.New("test-secret", time.Hour)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService))
	NewHandler(svc).RegisterRoutes(api)

	return apiEnv{router: router, jwt: jwtService, owner: owner, customer: customer, room: room}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func (e apiEnv) do(t *testing.T, user *domain.User, method, path string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	token, err := e.jwt.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestHandler_BookingLifecycleOverHTTP(t *testing.T) {
	e := setupAPI(t)

	code, env := e.do(t, e.customer, http.MethodPost, "/api/v1/bookings", gin.H{
		"room_id":        e.room.ID,
		"check_in_date":  "2026-06-20",
		"check_out_date": "2026-06-22",
		"adults":         2,
	})
	require.Equal(t, http.StatusCreated, code, env.Error.Code)

	var created struct {
		Booking domain.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id := created.Booking.ID
	assert.Equal(t, domain.BookingPending, created.Booking.Status)
	assert.Equal(t, "176", created.Booking.TotalAmount.String())
	base := "/api/v1/bookings/" + itoa(id)

	code, env = e.do(t, e.customer, http.MethodPost, "/api/v1/bookings", gin.H{
		"room_id":        e.room.ID,
		"check_in_date":  "2026-06-21",
		"check_out_date": "2026-06-23",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "BOOKING_CONFLICT", env.Error.Code)

	code, env = e.do(t, e.customer, http.MethodPost, base+"/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "UNAUTHORIZED_TRANSITION", env.Error.Code)

	code, env = e.do(t, e.owner, http.MethodPost, base+"/status", gin.H{"status": "checked_in"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	code, _ = e.do(t, e.owner, http.MethodPost, base+"/status", gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, code)

	code, env = e.do(t, e.customer, http.MethodPost, base+"/cancel", gin.H{"reason": "flight cancelled"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "UNAUTHORIZED_TRANSITION", env.Error.Code)

	code, env = e.do(t, e.owner, http.MethodPost, base+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MISSING_REASON", env.Error.Code)

	code, _ = e.do(t, e.owner, http.MethodPost, base+"/cancel", gin.H{"reason": ""})
	require.Equal(t, http.StatusOK, code)

	code, env = e.do(t, e.owner, http.MethodPost, base+"/status", gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "TERMINAL_STATE", env.Error.Code)

	code, env = e.do(t, e.customer, http.MethodGet, base+"/history", nil)
	require.Equal(t, http.StatusOK, code)
	var history struct {
		Events []domain.BookingStatusEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history.Events, 3)
	assert.Equal(t, domain.BookingCancelled, history.Events[2].ToStatus)

	code, env = e.do(t, e.customer, http.MethodGet, base+"/progress", nil)
	require.Equal(t, http.StatusOK, code)
	var progress struct {
		Steps []map[string]any `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Len(t, progress.Steps, 2)
}

func TestHandler_ListAndStats(t *testing.T) {
	e := setupAPI(t)

	for _, dates := range [][2]string{{"2026-07-01", "2026-07-03"}, {"2026-07-10", "2026-07-12"}} {
		code, env := e.do(t, e.customer, http.MethodPost, "/api/v1/bookings", gin.H{
			"room_id":        e.room.ID,
			"check_in_date":  dates[0],
			"check_out_date": dates[1],
		})
		require.Equal(t, http.StatusCreated, code, env.Error.Code)
	}

	code, env := e.do(t, e.customer, http.MethodGet, "/api/v1/bookings?status=pending", nil)
	require.Equal(t, http.StatusOK, code)
	var items []domain.Booking
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)

	code, _ = e.do(t, e.customer, http.MethodGet, "/api/v1/bookings/stats", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = e.do(t, e.owner, http.MethodGet, "/api/v1/bookings/stats", nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		Statistics struct {
			Total   int `json:"total"`
			Pending int `json:"pending"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.Statistics.Total)
	assert.Equal(t, 2, stats.Statistics.Pending)

	code, env = e.do(t, e.customer, http.MethodGet, "/api/v1/bookings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
