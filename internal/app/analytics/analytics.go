// Package analytics reduces priced rows into summary statistics for list views and the dashboard.
package analytics

// CategoryStat is the per-category slice of a Summary.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
}

// Summary of a list of priced rows.
type Summary struct {
	Count      int            `json:"count"`
	Sum        float64        `json:"sum"`
	Mean       float64        `json:"mean"`
	Min        float64        `json:"min"`
	Max        float64        `json:"max"`
	Categories []CategoryStat `json:"categories"`
}

// Summarize computes count, sum, mean, min, max and a category breakdown.
// Categories keep first-seen order. Empty input yields a zero Summary with an
// empty, non-nil Categories slice.
func Summarize[T any](items []T, valueOf func(T) float64, categoryOf func(T) string) Summary {
	s := Summary{Categories: []CategoryStat{}}
	index := make(map[string]int)

	for i, item := range items {
		v := valueOf(item)
		s.Count++
		s.Sum += v
		if i == 0 || v < s.Min {
			s.Min = v
		}
		if i == 0 || v > s.Max {
			s.Max = v
		}

		if categoryOf == nil {
			continue
		}
		cat := categoryOf(item)
		pos, ok := index[cat]
		if !ok {
			pos = len(s.Categories)
			index[cat] = pos
			s.Categories = append(s.Categories, CategoryStat{Category: cat})
		}
		s.Categories[pos].Count++
		s.Categories[pos].Sum += v
	}

	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}

// Growth is the percentage change from previous to current.
// A zero previous period reports 100 when anything appeared and 0 otherwise.
func Growth(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// Weighted scales a deal value by its win probability (0-100).
func Weighted(value float64, probability int) float64 {
	return value * float64(probability) / 100
}

// Deref reads an optional numeric field, treating nil as 0.
func Deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
