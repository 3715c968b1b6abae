package controllers

import (
	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// CategoryController serves category management
type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

type CategoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	BookCount   int     `json:"book_count" binding:"min=0"`
	TotalSales  float64 `json:"total_sales" binding:"min=0"`
	Trending    bool    `json:"trending"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Trending    *bool   `json:"trending"`
}

// CategoryStatsRequest overwrites the stored counters as given
type CategoryStatsRequest struct {
	BookCount  *int     `json:"book_count" binding:"required,min=0"`
	TotalSales *float64 `json:"total_sales" binding:"required,min=0"`
}

// ListCategories returns all categories, or only trending ones with ?trending=true
func (cc *CategoryController) ListCategories(c *gin.Context) {
	if c.Query("trending") == "true" {
		cc.ListTrending(c)
		return
	}
	categories, err := cc.categories.ListCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, categories)
}

func (cc *CategoryController) ListTrending(c *gin.Context) {
	categories, err := cc.categories.ListTrending(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, categories)
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	category, err := cc.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categories.CreateCategory(c.Request.Context(), services.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		BookCount:   req.BookCount,
		TotalSales:  req.TotalSales,
		Trending:    req.Trending,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categories.UpdateCategory(c.Request.Context(), id, services.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Trending:    req.Trending,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, category)
}

// UpdateStats overwrites book_count and total_sales
func (cc *CategoryController) UpdateStats(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req CategoryStatsRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := cc.categories.UpdateStats(c.Request.Context(), id, services.StatsUpdate{
		BookCount:  *req.BookCount,
		TotalSales: *req.TotalSales,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := cc.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, utils.MsgDeleteSuccess)
}
