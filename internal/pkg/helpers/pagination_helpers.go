package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePaginationParams extracts page and pageSize query parameters,
// clamping them to sane bounds
func ParsePaginationParams(c *gin.Context) (page, pageSize int) {
	page = DefaultPage
	pageSize = DefaultPageSize

	if p, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage))); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize))); err == nil && ps > 0 {
		pageSize = ps
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}

// CalculateOffsetLimit converts page/pageSize into SQL offset and limit
func CalculateOffsetLimit(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return (page - 1) * pageSize, pageSize
}

// NewPaginationInfo builds pagination metadata from totals
func NewPaginationInfo(page, pageSize int, totalItems int64) dto.PaginationInfo {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
