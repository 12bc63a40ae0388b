package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// ParseFloat parses a string to a float64, returning defaultValue if parsing fails
func ParseFloat(s string, defaultValue float64) float64 {
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val
	}
	return defaultValue
}

// Pagination holds normalized page/limit query values.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the SQL offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// GetPagination reads page/limit query parameters with sane bounds.
// Page defaults to 1, limit to 10, capped at 100.
func GetPagination(c *gin.Context) Pagination {
	page := ParseInt(c.DefaultQuery("page", "1"), 1)
	limit := ParseInt(c.DefaultQuery("limit", "10"), 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{Page: page, Limit: limit}
}
