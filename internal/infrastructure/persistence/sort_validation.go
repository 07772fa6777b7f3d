package persistence

import (
	"strings"

	"github.com/stockroom/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields present on every table
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// NamedSortFields is used by categories and brands
var NamedSortFields = withCommon("name")

// FirmSortFields contains allowed sort fields for firms
var FirmSortFields = withCommon("name", "phone")

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = withCommon("name", "price", "quantity", "purchase_count", "sold_count")

// LedgerSortFields is shared by sells and purchases
var LedgerSortFields = withCommon("quantity", "price", "amount")

// UserSortFields contains allowed sort fields for users
var UserSortFields = withCommon("username", "email", "first_name", "last_name", "last_login_at")

func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(CommonSortFields)+len(fields))
	for k := range CommonSortFields {
		m[k] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}

// orderClause builds a safe ORDER BY clause. The id tiebreaker keeps pages stable.
func orderClause(filter shared.Filter, allowed map[string]bool, defaultField string) string {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	if field == "id" {
		return "id " + dir
	}
	return field + " " + dir + ", id " + dir
}

// paginate counts the filtered rows, then applies ordering, offset and limit.
// A filter without a page size returns every row.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Order(orderClause(filter, allowed, defaultField))
	if !filter.Unlimited() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query, total, nil
}

// likePattern escapes LIKE wildcards in a user supplied search term
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(search))) + "%"
}
