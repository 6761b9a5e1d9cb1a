// Package listing implements the in-memory list reduction shared by every
// entity screen: case-insensitive substring search over designated fields,
// tri-state boolean and categorical filters, stable sorting and page-number
// pagination over an already-fetched collection.
package listing

import (
	"sort"
	"strings"
	"time"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// DefaultPageSize is used when a positive page size is not supplied
const DefaultPageSize = 20

// Params describes one reduction over a collection. A nil entry in Bools
// means "no filter" for that key; an empty string in Equals likewise.
type Params struct {
	Search    string
	Bools     map[string]*bool
	Equals    map[string]string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Schema declares the accessors of one entity type. Searchable fields feed
// the substring search; Strings/Numbers/Times feed sorting; Strings also
// feed categorical Equals filters and Bools feeds boolean filters.
type Schema[T any] struct {
	Searchable []func(T) string
	Bools      map[string]func(T) bool
	Strings    map[string]func(T) string
	Numbers    map[string]func(T) float64
	Times      map[string]func(T) time.Time
}

// Result is the reduced, ordered page of a collection
type Result[T any] struct {
	Items []T
	Total int // matching records before pagination
}

// Apply reduces items by search and filters, sorts them, and slices the
// requested page. It is a pure function of its inputs: the input slice is
// never mutated and equal inputs produce equal outputs.
func Apply[T any](items []T, p Params, s Schema[T]) Result[T] {
	matched := filter(items, p, s)
	sortItems(matched, p, s)

	total := len(matched)

	if p.PageSize > 0 {
		page := p.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * p.PageSize
		if start > total {
			start = total
		}
		end := start + p.PageSize
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}

	return Result[T]{Items: matched, Total: total}
}

func filter[T any](items []T, p Params, s Schema[T]) []T {
	search := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if search != "" && !matchesSearch(item, search, s.Searchable) {
			continue
		}
		if !matchesBools(item, p.Bools, s.Bools) {
			continue
		}
		if !matchesEquals(item, p.Equals, s.Strings) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T any](item T, search string, fields []func(T) string) bool {
	for _, get := range fields {
		if strings.Contains(strings.ToLower(get(item)), search) {
			return true
		}
	}
	return false
}

func matchesBools[T any](item T, filters map[string]*bool, accessors map[string]func(T) bool) bool {
	for key, want := range filters {
		if want == nil {
			continue
		}
		get, ok := accessors[key]
		if !ok {
			continue
		}
		if get(item) != *want {
			return false
		}
	}
	return true
}

func matchesEquals[T any](item T, filters map[string]string, accessors map[string]func(T) string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		get, ok := accessors[key]
		if !ok {
			continue
		}
		if !strings.EqualFold(get(item), want) {
			return false
		}
	}
	return true
}

// sortItems sorts in place with a stable comparator so records with equal
// keys keep their relative input order regardless of direction toggles.
func sortItems[T any](items []T, p Params, s Schema[T]) {
	if p.SortBy == "" {
		return
	}

	desc := strings.EqualFold(p.SortOrder, OrderDesc)

	var less func(a, b T) bool
	switch {
	case s.Strings != nil && s.Strings[p.SortBy] != nil:
		get := s.Strings[p.SortBy]
		less = func(a, b T) bool {
			return strings.ToLower(get(a)) < strings.ToLower(get(b))
		}
	case s.Numbers != nil && s.Numbers[p.SortBy] != nil:
		get := s.Numbers[p.SortBy]
		less = func(a, b T) bool { return get(a) < get(b) }
	case s.Times != nil && s.Times[p.SortBy] != nil:
		get := s.Times[p.SortBy]
		less = func(a, b T) bool { return get(a).Before(get(b)) }
	default:
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
