// Package query filters and sorts in-memory collections. Each collection
// describes its searchable text, filterable fields and sort keys once in a
// Schema, and every listing goes through Apply.
package query

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// All disables a categorical filter, like an empty value.
const All = "all"

// Compare orders two items; negative means a sorts first.
type Compare[T any] func(a, b T) int

type Schema[T any] struct {
	// Search fields are matched case-insensitively as substrings.
	Search []func(T) string
	// Filters are matched by case-insensitive equality.
	Filters map[string]func(T) string
	// Time drives the From/To range; nil disables date filtering.
	Time  func(T) time.Time
	Sorts map[string]Compare[T]
	// DefaultSort is used when Params.SortBy is empty or unknown.
	DefaultSort string
}

type Params struct {
	Search  string
	Filters map[string]string
	From    *time.Time
	To      *time.Time
	SortBy  string
	Desc    bool
}

// Active reports whether a filter value restricts results.
func Active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

// Match reports whether item passes every active condition in p.
func (s Schema[T]) Match(item T, p Params) bool {
	if term := strings.ToLower(strings.TrimSpace(p.Search)); term != "" {
		found := false
		for _, field := range s.Search {
			if strings.Contains(strings.ToLower(field(item)), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for name, want := range p.Filters {
		if !Active(want) {
			continue
		}
		get, ok := s.Filters[name]
		if !ok {
			continue
		}
		if !strings.EqualFold(get(item), strings.TrimSpace(want)) {
			return false
		}
	}

	if s.Time != nil {
		ts := s.Time(item)
		if p.From != nil && ts.Before(*p.From) {
			return false
		}
		if p.To != nil && ts.After(*p.To) {
			return false
		}
	}
	return true
}

// Apply returns the matching items sorted per p. The input is not modified.
func Apply[T any](items []T, s Schema[T], p Params) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.Match(item, p) {
			out = append(out, item)
		}
	}

	compare, ok := s.Sorts[p.SortBy]
	if !ok {
		compare = s.Sorts[s.DefaultSort]
	}
	if compare != nil {
		slices.SortStableFunc(out, func(a, b T) int {
			if p.Desc {
				return compare(b, a)
			}
			return compare(a, b)
		})
	}
	return out
}

// ByString compares case-insensitively.
func ByString[T any](get func(T) string) Compare[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
	}
}

func ByTime[T any](get func(T) time.Time) Compare[T] {
	return func(a, b T) int {
		return get(a).Compare(get(b))
	}
}

func ByNumber[T any, N cmp.Ordered](get func(T) N) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(get(a), get(b))
	}
}

// Page slices items for offset pagination. page starts at 1.
func Page[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	// compare page counts so a huge page cannot overflow the offset
	pages := len(items) / limit
	if len(items)%limit != 0 {
		pages++
	}
	if page > pages {
		return []T{}
	}
	start := (page - 1) * limit
	end := min(start+limit, len(items))
	return items[start:end]
}
