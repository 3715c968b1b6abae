package controllers

import (
	"time"

	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// AdminController serves the dashboard counters and the health document
type AdminController struct {
	stats *services.StatsService
}

func NewAdminController(stats *services.StatsService) *AdminController {
	return &AdminController{stats: stats}
}

// Stats returns the number of books, clients, orders and categories
func (ac *AdminController) Stats(c *gin.Context) {
	counts, err := ac.stats.Counts(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, counts)
}

// Health is served at the root path
func (ac *AdminController) Health(c *gin.Context) {
	utils.OK(c, gin.H{
		"message":   utils.AppName + " API",
		"status":    "running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
