package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes mounts the admin console API on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin", middleware.AdminOnly())
	g.GET("/dashboard", h.Dashboard)

	g.GET("/users", h.ListUsers)
	g.POST("/users/:id/block", h.BlockUser)
	g.POST("/users/:id/unblock", h.UnblockUser)

	g.GET("/reviews", h.ListReviews)
	g.POST("/reviews/:id/hide", h.HideReview)
	g.POST("/reviews/:id/show", h.ShowReview)
}

func (h *Handler) Dashboard(c *gin.Context) {
	res, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ListUsers(c *gin.Context) {
	var f UserListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query")
		return
	}

	users, total, p, err := h.service.ListUsers(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, users, total, p.Page, p.Limit)
}

func (h *Handler) BlockUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetUserBlocked(c.Request.Context(), middleware.UserID(c), id, true, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_blocked": true})
}

func (h *Handler) UnblockUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.SetUserBlocked(c.Request.Context(), middleware.UserID(c), id, false, ""); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_blocked": false})
}

func (h *Handler) ListReviews(c *gin.Context) {
	var f ReviewListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query")
		return
	}

	reviews, total, p, err := h.service.ListReviews(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, reviews, total, p.Page, p.Limit)
}

func (h *Handler) HideReview(c *gin.Context) {
	h.setReviewHidden(c, true)
}

func (h *Handler) ShowReview(c *gin.Context) {
	h.setReviewHidden(c, false)
}

func (h *Handler) setReviewHidden(c *gin.Context, hidden bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.SetReviewHidden(c.Request.Context(), id, hidden); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_hidden": hidden})
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrSelfBlock):
		response.Error(c, http.StatusBadRequest, "SELF_BLOCK", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
