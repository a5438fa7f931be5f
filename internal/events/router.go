package events

import (
	"matchday/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupEventRoutes registers event endpoints. All routes require a
// bearer token; writes additionally require the organizer role.
func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller, validator middleware.TokenValidator) {
	events := rg.Group("/events")
	events.Use(middleware.JWTAuth(validator))
	{
		events.GET("", controller.ListEvents)
		events.GET("/:id", controller.GetEvent)

		protected := events.Group("")
		protected.Use(middleware.RequireOrganizer())
		{
			protected.POST("", controller.CreateEvent)
			protected.PUT("/:id", controller.UpdateEvent)
			protected.DELETE("/:id", controller.DeleteEvent)
		}
	}
}
