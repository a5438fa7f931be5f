package bookings

import (
	"matchday/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers booking endpoints. Every route
// requires an authenticated caller.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, validator middleware.TokenValidator) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(validator))
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("", controller.ListBookings)
		bookings.GET("/:id", controller.GetBooking)
		bookings.PUT("/:id", controller.UpdateBooking)
		bookings.DELETE("/:id", controller.DeleteBooking)
	}
}
