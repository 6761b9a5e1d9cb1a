package dto

// ListQuery is the shared query-string shape of every list endpoint:
// free-text search, sort key + direction, page-number pagination and the
// tri-state active filter.
type ListQuery struct {
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	IsActive  *bool  `form:"is_active"`
}

// SetDefaults sets default values for pagination
func (q *ListQuery) SetDefaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
}
