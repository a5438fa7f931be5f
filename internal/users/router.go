package users

import (
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers user management endpoints, all behind the
// given auth middleware. The handler is injected rather than imported
// because the middleware package depends on this one through auth.
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authRequired)
	{
		users.GET("", controller.ListUsers)
		users.GET("/:id", controller.GetUser)
		users.PUT("/:id", controller.UpdateUser)
		users.DELETE("/:id", controller.DeleteUser)
	}
}
