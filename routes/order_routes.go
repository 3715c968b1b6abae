package routes

import (
	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/models"
	"github.com/gin-gonic/gin"
)

func initOrderRoutes(api *gin.RouterGroup, h handlers, authRequired gin.HandlerFunc) {
	orders := api.Group("/orders")
	orders.Use(authRequired)

	client := middleware.RequireRole(models.RoleClient)
	admin := middleware.RequireRole(models.RoleAdmin)
	{
		orders.POST("", client, h.orders.CreateOrder)
		orders.GET("/my", client, h.orders.ListMyOrders)
		orders.GET("/:id/invoice", client, h.orders.DownloadInvoice)

		orders.GET("", admin, h.orders.ListAllOrders)
		orders.PUT("/:id", admin, h.orders.UpdateStatus)
		orders.DELETE("/:id", admin, h.orders.DeleteOrder)
	}
}
