package persistence

import (
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// notFoundAs maps gorm.ErrRecordNotFound to a domain not-found error naming the resource
func notFoundAs(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NotFound(resource)
	}
	return err
}

// filterUUID reads a uuid filter value. Handlers may pass either a parsed
// uuid or its string form; anything unparsable is ignored.
func filterUUID(filter shared.Filter, key string) (uuid.UUID, bool) {
	raw, ok := filter.Filters[key]
	if !ok || raw == nil {
		return uuid.Nil, false
	}
	switch v := raw.(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, false
		}
		return *v, *v != uuid.Nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

// exists runs a LIMIT 1 probe and reports whether any row matched
func exists(query *gorm.DB) (bool, error) {
	var n int64
	if err := query.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
