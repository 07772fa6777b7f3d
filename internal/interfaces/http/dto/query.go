package dto

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stockroom/backoffice/internal/domain/shared"
)

// FilterKeys are the query parameters copied into shared.Filter.Filters.
// Repositories ignore keys they do not understand.
var FilterKeys = []string{"category_id", "brand_id", "product_id", "seller_id", "firm_id"}

// ListQuery holds the common list parameters.
// Limit is a pointer so an explicit limit=0 ("everything") differs from no limit.
type ListQuery struct {
	Limit  *int   `form:"limit" binding:"omitempty,min=0"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ToFilter converts the query into a repository filter
func (q ListQuery) ToFilter(c *gin.Context) shared.Filter {
	f := shared.DefaultFilter()
	if q.Limit != nil {
		f.PageSize = *q.Limit
	}
	if q.Page > 0 {
		f.Page = q.Page
	}
	f.Search = strings.TrimSpace(q.Search)
	if q.Sort != "" {
		f.OrderBy = q.Sort
	}
	if q.Order != "" {
		f.OrderDir = strings.ToLower(q.Order)
	}
	for _, key := range FilterKeys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			f.Filters[key] = v
		}
	}
	return f
}
