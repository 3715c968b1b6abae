package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultCoverURL is stored when a book is created without a cover
const DefaultCoverURL = "https://via.placeholder.com/400x600?text=No+image"

// Book represents a digital book in the catalog.
// BookNumber is the human-facing sequential id; it is assigned once at creation
// and never reused, deleted rows included.
type Book struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BookNumber  uint           `gorm:"uniqueIndex;not null" json:"book_number"`
	Title       string         `gorm:"not null" json:"title"`
	Author      string         `gorm:"not null" json:"author"`
	Category    string         `gorm:"not null;index" json:"category"`
	Price       float64        `gorm:"not null;check:price >= 0" json:"price"`
	Summary     string         `gorm:"not null" json:"summary"`
	Description string         `json:"description"`
	Excerpt     string         `json:"excerpt"`
	CoverURL    string         `json:"cover_url"`
	PDFURL      string         `gorm:"column:pdf_url" json:"pdf_url"`
	AddedAt     time.Time      `json:"added_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave trims the free-text fields
func (b *Book) BeforeSave(tx *gorm.DB) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Category = strings.TrimSpace(b.Category)
	b.Summary = strings.TrimSpace(b.Summary)
	b.Description = strings.TrimSpace(b.Description)
	b.Excerpt = strings.TrimSpace(b.Excerpt)
	return nil
}
