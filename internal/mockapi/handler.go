package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"staybook/internal/pkg/response"
	"staybook/internal/pkg/validator"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/properties", h.ListProperties)
	r.GET("/properties/:id", h.GetProperty)

	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}

	r.GET("/profile", h.GetProfile)
}

// ListProperties returns every listing.
// @Router /properties [GET]
func (h *Handler) ListProperties(c *gin.Context) {
	items, err := h.svc.ListProperties(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Router /properties/{id} [GET]
func (h *Handler) GetProperty(c *gin.Context) {
	p, err := h.svc.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// ListBookings returns all bookings, filtered by the userId query parameter
// when present.
// @Router /bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	items, err := h.svc.ListBookings(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// @Router /bookings/{id} [GET]
func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// CreateBooking stores a booking and links it to the user's profile.
// @Router /bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	b, err := h.svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// @Router /bookings/{id} [PATCH]
func (h *Handler) UpdateBooking(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	b, err := h.svc.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// @Router /bookings/{id} [DELETE]
func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.svc.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile returns the profile named by the id query parameter.
// @Router /profile [GET]
func (h *Handler) GetProfile(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "id is required")
		return
	}

	p, err := h.svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidDates), errors.Is(err, ErrUnknownProperty), errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "Internal error")
	}
}
