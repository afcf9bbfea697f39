// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	SortBy   string `json:"sortBy"`
	SortDesc bool   `json:"sortDesc"`
}

// Offset is the number of records before the requested page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// GetPaginationParams reads page, limit and sort from the query string.
// sort is a field name with an optional "-" prefix for descending order,
// restricted to allowedSort; anything else falls back to -createdAt.
func GetPaginationParams(c *gin.Context, defaultLimit, maxLimit int, allowedSort []string) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	// Validate and set defaults
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// Keep (page-1)*limit within int
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}

	sortBy, desc := ParseSort(c.Query("sort"), allowedSort)

	return PaginationParams{
		Page:     page,
		Limit:    limit,
		SortBy:   sortBy,
		SortDesc: desc,
	}
}

// ParseSort splits "-field" into (field, true), defaulting to newest first.
func ParseSort(raw string, allowed []string) (string, bool) {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")

	for _, f := range allowed {
		if f == field {
			return field, desc
		}
	}
	return "createdAt", true
}

func NewPagination(params PaginationParams, total int64, returned int) Pagination {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = int((total + int64(params.Limit) - 1) / int64(params.Limit))
	}

	return Pagination{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(params.Offset()+returned) < total,
		HasPrev:    params.Page > 1,
	}
}

func SetPaginationHeaders(c *gin.Context, p Pagination) {
	c.Header("X-Total-Count", strconv.FormatInt(p.Total, 10))
	c.Header("X-Page", strconv.Itoa(p.Page))
	c.Header("X-Per-Page", strconv.Itoa(p.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(p.TotalPages))
}
