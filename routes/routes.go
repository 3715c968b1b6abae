package routes

import (
	"time"

	"github.com/Govind-619/ebook-store/app"
	"github.com/Govind-619/ebook-store/controllers"
	"github.com/Govind-619/ebook-store/middleware"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const limiterCleanupInterval = 10 * time.Minute

// handlers groups the controllers mounted by SetupRouter
type handlers struct {
	auth       *controllers.AuthController
	users      *controllers.UserController
	books      *controllers.BookController
	categories *controllers.CategoryController
	orders     *controllers.OrderController
	uploads    *controllers.UploadController
	admin      *controllers.AdminController
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(a *app.App) *gin.Engine {
	// Explicit request DTOs: unknown JSON fields are an error, not silently dropped.
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	metrics := middleware.NewMetrics()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware(a.Config.CORSOrigins))
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(metrics.Handler())

	h := handlers{
		auth:       controllers.NewAuthController(a.Auth, a.Users),
		users:      controllers.NewUserController(a.Users),
		books:      controllers.NewBookController(a.Books),
		categories: controllers.NewCategoryController(a.Categories),
		orders:     controllers.NewOrderController(a.Orders),
		uploads:    controllers.NewUploadController(a.Uploads),
		admin:      controllers.NewAdminController(a.Stats),
	}

	router.GET("/", h.admin.Health)
	router.GET("/metrics", gin.WrapH(metrics.Exposition()))
	router.Static("/uploads", a.Uploads.Dir())

	authRequired := middleware.AuthMiddleware(a.Auth)
	limiter := middleware.NewRateLimiter(a.Config.RateLimitRPS, a.Config.RateLimitBurst)
	limiter.StartCleanup(limiterCleanupInterval, a.Done())

	api := router.Group("/api")
	{
		initUserRoutes(api, h, authRequired, limiter)
		initCatalogRoutes(api, h, authRequired)
		initOrderRoutes(api, h, authRequired)
		initAdminRoutes(api, h, authRequired)
	}

	return router
}
