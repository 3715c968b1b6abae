package services

import (
	"context"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"gorm.io/gorm"
)

// Counts is the admin dashboard summary
type Counts struct {
	Books      int64 `json:"books"`
	Users      int64 `json:"users"`
	Orders     int64 `json:"orders"`
	Categories int64 `json:"categories"`
}

// StatsService computes dashboard counters
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Counts returns the number of books, client users, orders and categories
func (s *StatsService) Counts(ctx context.Context) (*Counts, error) {
	var out Counts
	db := s.db.WithContext(ctx)
	queries := []struct {
		name string
		q    *gorm.DB
		dst  *int64
	}{
		{"books", db.Model(&models.Book{}), &out.Books},
		{"users", db.Model(&models.User{}).Where("role = ?", models.RoleClient), &out.Users},
		{"orders", db.Model(&models.Order{}), &out.Orders},
		{"categories", db.Model(&models.Category{}), &out.Categories},
	}
	for _, item := range queries {
		if err := item.q.Count(item.dst).Error; err != nil {
			return nil, utils.InternalError("Failed to count "+item.name, err)
		}
	}
	return &out, nil
}
