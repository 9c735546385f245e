package booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the booking API on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/stats", middleware.StaffOnly(), h.GetStatistics)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/bookings/:id/progress", h.GetProgress)
	rg.GET("/bookings/:id/history", h.GetHistory)
	rg.POST("/bookings/:id/status", h.Transition)
	rg.POST("/bookings/:id/cancel", h.Cancel)
	rg.GET("/rooms/:id/quote", h.Quote)
}

func actorFrom(c *gin.Context) lifecycle.Actor {
	return lifecycle.Actor{UserID: middleware.UserID(c), Role: middleware.Role(c)}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.Adults == 0 {
		req.Adults = 1
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	items, total, page, err := h.service.ListBookings(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, total, page.Page, page.Limit)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.service.GetBooking(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": v})
}

func (h *Handler) GetProgress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	steps, err := h.service.GetProgress(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"steps": steps})
}

func (h *Handler) GetHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	events, err := h.service.GetHistory(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func (h *Handler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.TransitionBooking(c.Request.Context(), actorFrom(c), id, req.Status, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": v})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.TransitionBooking(c.Request.Context(), actorFrom(c), id, domain.BookingCancelled, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": v})
}

func (h *Handler) GetStatistics(c *gin.Context) {
	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	st, err := h.service.GetStatistics(c.Request.Context(), actorFrom(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"statistics": st})
}

func (h *Handler) Quote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	q, err := h.service.Quote(c.Request.Context(), id, c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// writeError maps lifecycle, storage and service errors onto the HTTP envelope.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, lifecycle.ErrUnauthorized):
		response.Error(c, http.StatusForbidden, "UNAUTHORIZED_TRANSITION", err.Error())
	case errors.Is(err, lifecycle.ErrMissingReason):
		response.Error(c, http.StatusBadRequest, "MISSING_REASON", "A cancellation reason is required")
	case errors.Is(err, lifecycle.ErrTerminalState):
		response.Error(c, http.StatusConflict, "TERMINAL_STATE", err.Error())
	case errors.Is(err, repository.ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Booking was modified by someone else, reload and retry")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is not available for the selected dates")
	case errors.Is(err, ErrCapacity):
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
