package handler

import (
	"cmp"
	"strings"
	"time"

	"crm/internal/app/ds"
	"crm/internal/app/listquery"

	"github.com/gin-gonic/gin"
)

// Параметры списков: ?search=, ?sort= (минус в начале означает убывание)

func byString[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))) }
}

func byNumber[T any, N cmp.Ordered](get func(T) N) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

func byTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return get(a).Compare(get(b)) }
}

func collegeQuery(c *gin.Context) listquery.Query[ds.College] {
	return listquery.Query[ds.College]{
		Search: c.Query("search"),
		Fields: func(col ds.College) []string { return []string{col.Name, col.City, col.State} },
		Sort:   c.Query("sort"),
		Sorters: map[string]func(a, b ds.College) int{
			"name":       byString(func(col ds.College) string { return col.Name }),
			"city":       byString(func(col ds.College) string { return col.City }),
			"status":     byString(func(col ds.College) string { return col.Status }),
			"created_at": byTime(func(col ds.College) time.Time { return col.CreatedAt }),
		},
	}
}

func contactQuery(c *gin.Context) listquery.Query[ds.Contact] {
	return listquery.Query[ds.Contact]{
		Search: c.Query("search"),
		Fields: func(ct ds.Contact) []string { return []string{ct.Name, ct.Email, ct.Designation} },
		Sort:   c.Query("sort"),
		Sorters: map[string]func(a, b ds.Contact) int{
			"name":       byString(func(ct ds.Contact) string { return ct.Name }),
			"created_at": byTime(func(ct ds.Contact) time.Time { return ct.CreatedAt }),
		},
	}
}

func courseQuery(c *gin.Context, minPrice, maxPrice *float64) listquery.Query[ds.Course] {
	return listquery.Query[ds.Course]{
		Search: c.Query("search"),
		Fields: func(co ds.Course) []string {
			return append([]string{co.Name, co.Description}, co.Tags...)
		},
		Category:   c.Query("category"),
		CategoryOf: func(co ds.Course) string { return co.Category },
		Min:        minPrice,
		Max:        maxPrice,
		ValueOf:    coursePrice,
		Sort:       c.Query("sort"),
		Sorters: map[string]func(a, b ds.Course) int{
			"name":       byString(func(co ds.Course) string { return co.Name }),
			"category":   byString(func(co ds.Course) string { return co.Category }),
			"price":      byNumber(coursePrice),
			"duration":   byNumber(func(co ds.Course) int { return co.DurationHours }),
			"created_at": byTime(func(co ds.Course) time.Time { return co.CreatedAt }),
		},
	}
}

func pricingModelQuery(c *gin.Context) listquery.Query[ds.PricingModel] {
	return listquery.Query[ds.PricingModel]{
		Search:     c.Query("search"),
		Fields:     func(p ds.PricingModel) []string { return []string{p.Name, p.Description} },
		Category:   c.Query("tier"),
		CategoryOf: func(p ds.PricingModel) string { return p.Tier },
		ValueOf:    pricingModelPrice,
		Sort:       c.Query("sort"),
		Sorters: map[string]func(a, b ds.PricingModel) int{
			"name":       byString(func(p ds.PricingModel) string { return p.Name }),
			"tier":       byString(func(p ds.PricingModel) string { return p.Tier }),
			"price":      byNumber(pricingModelPrice),
			"created_at": byTime(func(p ds.PricingModel) time.Time { return p.CreatedAt }),
		},
	}
}

func dealQuery(c *gin.Context) listquery.Query[ds.SalesDeal] {
	return listquery.Query[ds.SalesDeal]{
		Search:     c.Query("search"),
		Fields:     func(d ds.SalesDeal) []string { return []string{d.Title, d.Notes} },
		Category:   c.Query("stage"),
		CategoryOf: func(d ds.SalesDeal) string { return d.Stage },
		Sort:       c.Query("sort"),
		Sorters: map[string]func(a, b ds.SalesDeal) int{
			"title":       byString(func(d ds.SalesDeal) string { return d.Title }),
			"value":       byNumber(func(d ds.SalesDeal) float64 { return d.Value }),
			"probability": byNumber(func(d ds.SalesDeal) int { return d.Probability }),
			"created_at":  byTime(func(d ds.SalesDeal) time.Time { return d.CreatedAt }),
		},
	}
}

func coursePrice(c ds.Course) float64 { return c.BasePrice }

func pricingModelPrice(p ds.PricingModel) float64 { return p.BasePrice }

func dealValue(d ds.SalesDeal) float64 { return d.Value }
