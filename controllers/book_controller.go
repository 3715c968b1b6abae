package controllers

import (
	"github.com/Govind-619/ebook-store/services"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/gin-gonic/gin"
)

// BookController serves the catalog
type BookController struct {
	books *services.BookService
}

func NewBookController(books *services.BookService) *BookController {
	return &BookController{books: books}
}

type BookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Excerpt     string   `json:"excerpt"`
	CoverURL    string   `json:"cover_url"`
	PDFURL      string   `json:"pdf_url"`
}

type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Summary     *string  `json:"summary"`
	Description *string  `json:"description"`
	Excerpt     *string  `json:"excerpt"`
	CoverURL    *string  `json:"cover_url"`
	PDFURL      *string  `json:"pdf_url"`
}

// ListBooks returns the catalog, optionally filtered by ?q= and ?category=.
// With ?page= or ?limit= only that page is returned and the totals go in headers.
func (bc *BookController) ListBooks(c *gin.Context) {
	filter := services.BookFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}

	page, paged := utils.ParsePagination(c)
	if paged {
		total, err := bc.books.CountBooks(c.Request.Context(), filter)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		page.SetTotal(total)
		filter.Limit = page.Limit
		filter.Offset = page.Offset
	}

	books, err := bc.books.ListBooks(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if paged {
		page.WriteHeaders(c)
	}
	utils.OK(c, books)
}

func (bc *BookController) GetBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	book, err := bc.books.GetBook(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, book)
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.books.CreateBook(c.Request.Context(), services.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Price:       req.Price,
		Summary:     req.Summary,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		CoverURL:    req.CoverURL,
		PDFURL:      req.PDFURL,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, book)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.books.UpdateBook(c.Request.Context(), id, services.BookUpdate{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Price:       req.Price,
		Summary:     req.Summary,
		Description: req.Description,
		Excerpt:     req.Excerpt,
		CoverURL:    req.CoverURL,
		PDFURL:      req.PDFURL,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, book)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := bc.books.DeleteBook(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, utils.MsgDeleteSuccess)
}
