package routes

import (
	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/models"
	"github.com/gin-gonic/gin"
)

func initUserRoutes(api *gin.RouterGroup, h handlers, authRequired gin.HandlerFunc, limiter *middleware.RateLimiter) {
	users := api.Group("/users")
	{
		// Public
		users.POST("/register", limiter.Handler(), h.auth.Register)
		users.POST("/login", limiter.Handler(), h.auth.Login)

		// Any authenticated user
		self := users.Group("")
		self.Use(authRequired)
		{
			self.GET("/profile", h.auth.GetProfile)
			self.PUT("/profile", h.auth.UpdateProfile)
			self.PUT("/password", h.auth.ChangePassword)
		}

		// Admin client management
		admin := users.Group("")
		admin.Use(authRequired, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/clients", h.users.ListClients)
			admin.POST("/clients", h.users.CreateClient)
			admin.PUT("/clients/:id", h.users.UpdateClient)
			admin.DELETE("/:id", h.users.DeleteUser)
		}
	}
}
