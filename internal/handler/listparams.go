package handler

import (
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/listing"
)

// listParams converts the bound query into listing parameters. Extra
// categorical filters go in equals.
func listParams(q *dto.ListQuery, equals map[string]string) listing.Params {
	q.SetDefaults()
	return listing.Params{
		Search:    q.Search,
		Bools:     map[string]*bool{"is_active": q.IsActive},
		Equals:    equals,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
}
