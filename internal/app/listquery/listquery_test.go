package listquery

import (
	"cmp"
	"slices"
	"testing"
)

type course struct {
	id    int
	name  string
	cat   string
	price float64
}

var sorters = map[string]func(a, b course) int{
	"name":  func(a, b course) int { return cmp.Compare(a.name, b.name) },
	"price": func(a, b course) int { return cmp.Compare(a.price, b.price) },
}

func ids(items []course) []int {
	out := make([]int, len(items))
	for i, c := range items {
		out[i] = c.id
	}
	return out
}

func fields(c course) []string { return []string{c.name} }

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	items := []course{
		{id: 1, name: "Engineering 101"},
		{id: 2, name: "Art History"},
	}
	q := Query[course]{Search: "eng", Fields: fields}

	got := q.Filter(items)

	if !slices.Equal(ids(got), []int{1}) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}

func TestFilterCombinesPredicates(t *testing.T) {
	items := []course{
		{id: 1, name: "Data Science", cat: "tech", price: 500},
		{id: 2, name: "Data Ethics", cat: "humanities", price: 300},
		{id: 3, name: "Big Data", cat: "tech", price: 1500},
		{id: 4, name: "Networks", cat: "tech", price: 700},
	}
	lo, hi := 100.0, 1000.0
	q := Query[course]{
		Search:     "DATA",
		Fields:     fields,
		Category:   "tech",
		CategoryOf: func(c course) string { return c.cat },
		Min:        &lo,
		Max:        &hi,
		ValueOf:    func(c course) float64 { return c.price },
	}

	got := q.Filter(items)

	if !slices.Equal(ids(got), []int{1}) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	items := []course{
		{id: 1, name: "Python"}, {id: 2, name: "pyTorch"}, {id: 3, name: "Go"},
	}
	q := Query[course]{Search: "py", Fields: fields}

	once := q.Filter(items)
	twice := q.Filter(once)

	if !slices.Equal(ids(once), ids(twice)) {
		t.Errorf("expected %v, got %v", ids(once), ids(twice))
	}
}

func TestSortIsStable(t *testing.T) {
	items := []course{
		{id: 1, price: 200}, {id: 2, price: 100}, {id: 3, price: 200}, {id: 4, price: 100},
	}
	q := Query[course]{Sort: "price", Sorters: sorters}

	first := q.SortList(items)
	second := q.SortList(first)

	if !slices.Equal(ids(first), []int{2, 4, 1, 3}) {
		t.Errorf("expected [2 4 1 3], got %v", ids(first))
	}
	if !slices.Equal(ids(first), ids(second)) {
		t.Errorf("expected repeated sort to keep %v, got %v", ids(first), ids(second))
	}
}

func TestSortDescending(t *testing.T) {
	items := []course{{id: 1, price: 1}, {id: 2, price: 3}, {id: 3, price: 3}}
	q := Query[course]{Sort: "-price", Sorters: sorters}

	got := q.SortList(items)

	if !slices.Equal(ids(got), []int{2, 3, 1}) {
		t.Errorf("expected [2 3 1], got %v", ids(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := []course{{id: 1, name: "b"}, {id: 2, name: "a"}}
	q := Query[course]{Sort: "name", Sorters: sorters}

	got := q.Apply(items)

	if !slices.Equal(ids(items), []int{1, 2}) {
		t.Errorf("input was reordered: %v", ids(items))
	}
	if !slices.Equal(ids(got), []int{2, 1}) {
		t.Errorf("expected [2 1], got %v", ids(got))
	}
}

func TestUnknownSortKeepsOrder(t *testing.T) {
	items := []course{{id: 3}, {id: 1}, {id: 2}}
	q := Query[course]{Sort: "popularity", Sorters: sorters}

	if got := q.SortList(items); !slices.Equal(ids(got), []int{3, 1, 2}) {
		t.Errorf("expected [3 1 2], got %v", ids(got))
	}
}

func TestEmptyInput(t *testing.T) {
	q := Query[course]{Search: "x", Fields: fields, Sort: "name", Sorters: sorters}
	got := q.Apply(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
