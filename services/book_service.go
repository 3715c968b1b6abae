package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"gorm.io/gorm"
)

// BookInput is the payload for creating a book
type BookInput struct {
	Title       string
	Author      string
	Category    string
	Price       *float64
	Summary     string
	Description string
	Excerpt     string
	CoverURL    string
	PDFURL      string
}

// BookUpdate lists the fields that may change on a book. Nil fields are kept.
type BookUpdate struct {
	Title       *string
	Author      *string
	Category    *string
	Price       *float64
	Summary     *string
	Description *string
	Excerpt     *string
	CoverURL    *string
	PDFURL      *string
}

// BookFilter narrows ListBooks. Query is a case-insensitive substring matched
// against title, author, summary and description; Category must match exactly.
// A positive Limit selects one page starting at Offset.
type BookFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

// BookService manages the book catalog
type BookService struct {
	db *gorm.DB
}

func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db}
}

// CreateBook validates and stores a book, assigning the next book number
func (s *BookService) CreateBook(ctx context.Context, in BookInput) (*models.Book, error) {
	if missing := utils.MissingFields([]string{"title", "author", "category", "summary"}, in.Title, in.Author, in.Category, in.Summary); len(missing) > 0 {
		return nil, utils.ValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}
	if in.Price == nil {
		return nil, utils.ValidationError("price is required")
	}
	if *in.Price < 0 {
		return nil, utils.ValidationError("price must be positive")
	}

	book := &models.Book{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Price:       *in.Price,
		Summary:     in.Summary,
		Description: in.Description,
		Excerpt:     in.Excerpt,
		CoverURL:    strings.TrimSpace(in.CoverURL),
		PDFURL:      strings.TrimSpace(in.PDFURL),
		AddedAt:     time.Now(),
	}
	if book.CoverURL == "" {
		book.CoverURL = models.DefaultCoverURL
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextBookNumber(tx)
		if err != nil {
			return err
		}
		book.BookNumber = next
		return tx.Create(book).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		utils.LogWarn("Book number collision on create: %v", err)
		return nil, utils.ConflictError(utils.ErrBookNumberTaken, err)
	}
	if err != nil {
		return nil, utils.InternalError("Failed to create book", err)
	}
	utils.LogInfo("Book created: id=%d number=%d title=%q", book.ID, book.BookNumber, book.Title)
	return book, nil
}

// nextBookNumber returns max+1 over every book ever stored, soft-deleted ones
// included, so a number is never handed out twice
func nextBookNumber(tx *gorm.DB) (uint, error) {
	var max int64
	row := tx.Unscoped().Model(&models.Book{}).Select("COALESCE(MAX(book_number), 0)").Row()
	if err := row.Scan(&max); err != nil {
		return 0, err
	}
	return uint(max) + 1, nil
}

// ListBooks returns the catalog, newest first, optionally filtered
func (s *BookService) ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error) {
	q := s.filtered(ctx, filter)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var books []models.Book
	if err := q.Order("added_at DESC, id DESC").Find(&books).Error; err != nil {
		return nil, utils.InternalError("Failed to list books", err)
	}
	return books, nil
}

// CountBooks counts the books matching filter, ignoring Limit and Offset
func (s *BookService) CountBooks(ctx context.Context, filter BookFilter) (int64, error) {
	var total int64
	if err := s.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, utils.InternalError("Failed to count books", err)
	}
	return total, nil
}

func (s *BookService) filtered(ctx context.Context, filter BookFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Book{})
	if query := strings.TrimSpace(filter.Query); query != "" {
		like := "%" + escapeLike(strings.ToLower(query)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\' OR LOWER(summary) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`,
			like, like, like, like)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		q = q.Where("category = ?", category)
	}
	return q
}

// GetBook loads a book by its storage id
func (s *BookService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Book not found")
		}
		return nil, utils.InternalError("Failed to load book", err)
	}
	return &book, nil
}

// GetBooksByIDs loads the existing books among ids, keyed by id. Missing ids
// are simply absent from the map.
func (s *BookService) GetBooksByIDs(ctx context.Context, ids []uint) (map[uint]*models.Book, error) {
	out := make(map[uint]*models.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var books []models.Book
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, utils.InternalError("Failed to load books", err)
	}
	for i := range books {
		out[books[i].ID] = &books[i]
	}
	return out, nil
}

// UpdateBook applies a partial update. Required text fields cannot be blanked.
func (s *BookService) UpdateBook(ctx context.Context, id uint, in BookUpdate) (*models.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	required := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"title", in.Title, &book.Title},
		{"author", in.Author, &book.Author},
		{"category", in.Category, &book.Category},
		{"summary", in.Summary, &book.Summary},
	}
	for _, f := range required {
		if f.src == nil {
			continue
		}
		if strings.TrimSpace(*f.src) == "" {
			return nil, utils.ValidationError(f.name + " cannot be empty")
		}
		*f.dst = *f.src
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, utils.ValidationError("price must be positive")
		}
		book.Price = *in.Price
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.Excerpt != nil {
		book.Excerpt = *in.Excerpt
	}
	if in.CoverURL != nil {
		book.CoverURL = strings.TrimSpace(*in.CoverURL)
	}
	if in.PDFURL != nil {
		book.PDFURL = strings.TrimSpace(*in.PDFURL)
	}

	if err := s.db.WithContext(ctx).Save(book).Error; err != nil {
		return nil, utils.InternalError("Failed to update book", err)
	}
	utils.LogInfo("Book %d updated", book.ID)
	return book, nil
}

// DeleteBook soft-deletes a book. Order items keep pointing at it.
func (s *BookService) DeleteBook(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return utils.InternalError("Failed to delete book", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("Book not found")
	}
	utils.LogInfo("Book %d deleted", id)
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
