package routes

import (
	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/models"
	"github.com/gin-gonic/gin"
)

func initCatalogRoutes(api *gin.RouterGroup, h handlers, authRequired gin.HandlerFunc) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	books := api.Group("/books")
	{
		books.GET("", h.books.ListBooks)
		books.GET("/:id", h.books.GetBook)
		books.POST("", authRequired, adminOnly, h.books.CreateBook)
		books.PUT("/:id", authRequired, adminOnly, h.books.UpdateBook)
		books.DELETE("/:id", authRequired, adminOnly, h.books.DeleteBook)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.categories.ListCategories)
		categories.GET("/trending", h.categories.ListTrending)
		categories.GET("/:id", h.categories.GetCategory)
		categories.POST("", authRequired, adminOnly, h.categories.CreateCategory)
		categories.PUT("/:id", authRequired, adminOnly, h.categories.UpdateCategory)
		categories.PATCH("/:id/stats", authRequired, adminOnly, h.categories.UpdateStats)
		categories.DELETE("/:id", authRequired, adminOnly, h.categories.DeleteCategory)
	}

	upload := api.Group("/upload")
	{
		upload.GET("/test", h.uploads.Test)
		upload.POST("", authRequired, adminOnly, h.uploads.Upload)
	}
}
