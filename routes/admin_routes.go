package routes

import (
	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/models"
	"github.com/gin-gonic/gin"
)

func initAdminRoutes(api *gin.RouterGroup, h handlers, authRequired gin.HandlerFunc) {
	admin := api.Group("/admin")
	admin.Use(authRequired, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", h.admin.Stats)
		admin.GET("/orders/export", h.orders.ExportOrders)
	}
}
