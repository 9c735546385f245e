package payment

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/lifecycle"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts admin-only payment endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/payments", middleware.AdminOnly())
	g.POST("/:booking_id/paid", h.MarkPaid)
	g.POST("/:booking_id/failed", h.MarkFailed)
	g.GET("/refunds", h.ListRefunds)
	g.POST("/refunds/process", h.ProcessRefunds)
}

type changeFunc func(ctx context.Context, actor lifecycle.Actor, bookingID int64) (*domain.Booking, error)

func (h *Handler) MarkPaid(c *gin.Context) {
	h.change(c, h.service.MarkPaid)
}

func (h *Handler) MarkFailed(c *gin.Context) {
	h.change(c, h.service.MarkFailed)
}

func (h *Handler) change(c *gin.Context, fn changeFunc) {
	id, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	actor := lifecycle.Actor{UserID: middleware.UserID(c), Role: middleware.Role(c)}
	b, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) ListRefunds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, p, err := h.service.ListRefunds(c.Request.Context(), repository.Pagination{Page: page, Limit: limit})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, total, p.Page, p.Limit)
}

func (h *Handler) ProcessRefunds(c *gin.Context) {
	res, err := h.service.ProcessRefunds(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrBookingCancelled):
		response.Error(c, http.StatusConflict, "BOOKING_CANCELLED", "Booking is cancelled")
	case errors.Is(err, ErrInvalidPaymentState):
		response.Error(c, http.StatusConflict, "INVALID_PAYMENT_STATE", err.Error())
	case errors.Is(err, repository.ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", "Booking was modified by someone else, reload and retry")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
