package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"gorm.io/gorm"
)

// CategoryInput is the payload for creating a category
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	BookCount   int
	TotalSales  float64
	Trending    bool
}

// CategoryUpdate lists the fields that may change on a category
type CategoryUpdate struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	Trending    *bool
}

// StatsUpdate overwrites the counters of a category. The values are stored as
// given; nothing is recomputed from books or orders.
type StatsUpdate struct {
	BookCount  int
	TotalSales float64
}

// CategoryService manages categories
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, utils.ValidationError("name is required")
	}
	if in.BookCount < 0 || in.TotalSales < 0 {
		return nil, utils.ValidationError("book_count and total_sales cannot be negative")
	}
	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		BookCount:   in.BookCount,
		TotalSales:  in.TotalSales,
		Trending:    in.Trending,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, utils.InternalError("Failed to create category", err)
	}
	utils.LogInfo("Category created: id=%d name=%q", category.ID, category.Name)
	return category, nil
}

// ListCategories returns all categories sorted by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, utils.InternalError("Failed to list categories", err)
	}
	return categories, nil
}

// ListTrending returns trending categories, best selling first
func (s *CategoryService) ListTrending(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("trending = ?", true).
		Order("total_sales DESC, id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, utils.InternalError("Failed to list trending categories", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Category not found")
		}
		return nil, utils.InternalError("Failed to load category", err)
	}
	return &category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, in CategoryUpdate) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, utils.ValidationError("name cannot be empty")
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.Trending != nil {
		category.Trending = *in.Trending
	}
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, utils.InternalError("Failed to update category", err)
	}
	utils.LogInfo("Category %d updated", category.ID)
	return category, nil
}

// UpdateStats blind-overwrites book_count and total_sales
func (s *CategoryService) UpdateStats(ctx context.Context, id uint, in StatsUpdate) (*models.Category, error) {
	if in.BookCount < 0 || in.TotalSales < 0 {
		return nil, utils.ValidationError("book_count and total_sales cannot be negative")
	}
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(category).Updates(map[string]interface{}{
		"book_count":  in.BookCount,
		"total_sales": in.TotalSales,
	}).Error
	if err != nil {
		return nil, utils.InternalError("Failed to update category stats", err)
	}
	category.BookCount = in.BookCount
	category.TotalSales = in.TotalSales
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return utils.InternalError("Failed to delete category", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("Category not found")
	}
	utils.LogInfo("Category %d deleted", id)
	return nil
}
