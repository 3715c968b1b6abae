package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page size bounds for list endpoints
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination represents pagination parameters
type Pagination struct {
	Page     int
	Limit    int
	Offset   int
	Total    int64
	LastPage int
}

// ParsePagination reads ?page= and ?limit=. It reports false when neither is
// present; list endpoints then return every row.
func ParsePagination(c *gin.Context) (*Pagination, bool) {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return nil, false
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return &Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, true
}

// SetTotal sets the total number of items and calculates the last page
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	if p.Limit > 0 {
		p.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
}

// WriteHeaders exposes the page window next to an unwrapped JSON array
func (p *Pagination) WriteHeaders(c *gin.Context) {
	c.Header("X-Total-Count", strconv.FormatInt(p.Total, 10))
	c.Header("X-Page", strconv.Itoa(p.Page))
	c.Header("X-Per-Page", strconv.Itoa(p.Limit))
	c.Header("X-Last-Page", strconv.Itoa(p.LastPage))
}
