package handler

import (
	"net/http"
	"time"

	"crm/internal/app/analytics"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// ============ ДАШБОРД ============

// GetDashboard сводные показатели, пересчитываются на каждый запрос
// @Summary Дашборд
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	now := time.Now().UTC()
	data, err := h.Repository.DashboardData(c.Request.Context(), now)
	if err != nil {
		storeError(c, err, "failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, buildDashboard(data, now))
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// createdGrowth сравнивает число записей, созданных в этом и прошлом месяце
func createdGrowth[T any](items []T, createdAt func(T) time.Time, now time.Time) float64 {
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var current, previous int64
	for _, item := range items {
		t := createdAt(item)
		switch {
		case !t.Before(thisMonth):
			current++
		case !t.Before(lastMonth):
			previous++
		}
	}
	return analytics.Growth(current, previous)
}

func isOpenDeal(d ds.SalesDeal) bool {
	return d.Stage != ds.StageClosedWon && d.Stage != ds.StageClosedLost
}

func buildDashboard(data *repository.DashboardData, now time.Time) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Colleges:         len(data.Colleges),
		Contacts:         data.Contacts,
		Courses:          len(data.Courses),
		PricingModels:    len(data.PricingModels),
		CollegesByStatus: map[string]int{},
		UpcomingMeetings: mapSlice(data.Upcoming, toMeeting),
		DueFollowUps:     mapSlice(data.DueFollowUps, toMeeting),
	}

	for _, col := range data.Colleges {
		resp.CollegesByStatus[col.Status]++
	}
	for _, p := range data.PricingModels {
		if p.IsActive {
			resp.ActivePricing++
		}
	}

	for _, d := range data.Deals {
		switch {
		case isOpenDeal(d):
			resp.PipelineValue += d.Value
			resp.WeightedPipeline += analytics.Weighted(d.Value, d.Probability)
		case d.Stage == ds.StageClosedWon:
			resp.WonValue += d.Value
		}
	}
	resp.DealsByStage = toSummary(analytics.Summarize(data.Deals, dealValue, func(d ds.SalesDeal) string { return d.Stage })).Categories

	resp.CollegeGrowth = createdGrowth(data.Colleges, func(c ds.College) time.Time { return c.CreatedAt }, now)
	resp.DealGrowth = createdGrowth(data.Deals, func(d ds.SalesDeal) time.Time { return d.CreatedAt }, now)
	resp.CoursePrices = toSummary(analytics.Summarize(data.Courses, coursePrice, func(co ds.Course) string { return co.Category }))

	return resp
}
