package bookings

import (
	"errors"
	"net/http"

	"matchday/internal/events"
	"matchday/internal/shared/middleware"
	"matchday/internal/shared/utils/response"
	"matchday/internal/tickets"
	"matchday/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /bookings
func (ctrl *Controller) CreateBooking(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.CreateBooking(c.Request.Context(), caller.UserID, req)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to create booking")
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetBooking handles GET /bookings/:id
func (ctrl *Controller) GetBooking(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), caller.UserID, id)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to get booking")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListBookings handles GET /bookings
func (ctrl *Controller) ListBookings(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var query ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.ListBookings(c.Request.Context(), caller.UserID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", list, nil)
}

// UpdateBooking handles PUT /bookings/:id
func (ctrl *Controller) UpdateBooking(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.UpdateBooking(c.Request.Context(), caller.UserID, id, req)
	if err != nil {
		ctrl.respondServiceError(c, err, "Failed to update booking")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking updated successfully", booking, nil)
}

// DeleteBooking handles DELETE /bookings/:id
func (ctrl *Controller) DeleteBooking(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := ctrl.service.DeleteBooking(c.Request.Context(), caller.UserID, id); err != nil {
		ctrl.respondServiceError(c, err, "Failed to delete booking")
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking deleted successfully", nil, nil)
}

// respondServiceError maps domain errors onto HTTP statuses
func (ctrl *Controller) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, events.ErrEventNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Event not found", nil, nil)
	case errors.Is(err, users.ErrUserNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, tickets.ErrUnknownTierType):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, tickets.ErrInsufficientInventory):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrDuplicateSelection):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
