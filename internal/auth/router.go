package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the public auth endpoints
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/refresh", controller.RefreshToken)
	}
}
