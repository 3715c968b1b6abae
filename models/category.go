package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups books for browsing. Books reference a category by name only,
// so renaming or deleting a category does not touch existing books.
type Category struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	BookCount   int     `json:"book_count" gorm:"default:0"`
	TotalSales  float64 `json:"total_sales" gorm:"default:0"`
	Trending    bool    `json:"trending" gorm:"default:false;index"`
}

// BeforeSave hook to ensure name is always trimmed
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
