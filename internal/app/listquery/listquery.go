// Package listquery filters and sorts in-memory result lists.
package listquery

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Query describes how to narrow and order a list of T.
//
// Search matches case-insensitively as a substring of any field returned by
// Fields. Category, when set, must equal CategoryOf. Min and Max, when set,
// bound ValueOf inclusively. All predicates are combined with AND.
type Query[T any] struct {
	Search string
	Fields func(T) []string

	Category   string
	CategoryOf func(T) string

	Min, Max *float64
	ValueOf  func(T) float64

	// Sort names an entry of Sorters; a leading "-" reverses it.
	Sort    string
	Sorters map[string]func(a, b T) int
}

// Apply returns a new slice; items is never modified.
func (q Query[T]) Apply(items []T) []T {
	return q.SortList(q.Filter(items))
}

// Filter keeps the items matching every configured predicate.
func (q Query[T]) Filter(items []T) []T {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))

	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !q.matchesSearch(item, needle, fold) {
			continue
		}
		if q.Category != "" && q.CategoryOf != nil && q.CategoryOf(item) != q.Category {
			continue
		}
		if q.ValueOf != nil {
			v := q.ValueOf(item)
			if q.Min != nil && v < *q.Min {
				continue
			}
			if q.Max != nil && v > *q.Max {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func (q Query[T]) matchesSearch(item T, needle string, fold cases.Caser) bool {
	if q.Fields == nil {
		return true
	}
	for _, f := range q.Fields(item) {
		if strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

// SortList orders a copy of items by the configured sort key. Ties keep input
// order. An empty or unknown key leaves the order unchanged.
func (q Query[T]) SortList(items []T) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}

	key, desc := strings.CutPrefix(q.Sort, "-")
	cmp, ok := q.Sorters[key]
	if !ok {
		return out
	}
	if desc {
		slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}
