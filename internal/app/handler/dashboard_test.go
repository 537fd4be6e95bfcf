package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"crm/internal/app/ds"
	"crm/internal/app/repository"

	"github.com/gin-gonic/gin"
)

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	data := &repository.DashboardData{
		Colleges: []ds.College{
			{ID: 1, Status: ds.CollegeProspect, CreatedAt: thisMonth},
			{ID: 2, Status: ds.CollegeProspect, CreatedAt: thisMonth},
			{ID: 3, Status: ds.CollegeClosedWon, CreatedAt: lastMonth},
		},
		Deals: []ds.SalesDeal{
			{ID: 1, Stage: ds.StageProposal, Value: 1000, Probability: 50, CreatedAt: thisMonth},
			{ID: 2, Stage: ds.StageClosedWon, Value: 400, Probability: 100, CreatedAt: lastMonth},
			{ID: 3, Stage: ds.StageClosedLost, Value: 300, CreatedAt: lastMonth},
		},
		Courses: []ds.Course{
			{ID: 1, Category: "eng", BasePrice: 100},
			{ID: 2, Category: "mgmt", BasePrice: 300},
		},
		PricingModels: []ds.PricingModel{{ID: 1, IsActive: true}, {ID: 2}},
		Contacts:      4,
	}

	got := buildDashboard(data, now)

	if got.Colleges != 3 || got.Contacts != 4 || got.Courses != 2 || got.PricingModels != 2 || got.ActivePricing != 1 {
		t.Errorf("unexpected counts: %+v", got)
	}
	if got.CollegesByStatus[ds.CollegeProspect] != 2 || got.CollegesByStatus[ds.CollegeClosedWon] != 1 {
		t.Errorf("unexpected colleges by status: %v", got.CollegesByStatus)
	}
	if got.PipelineValue != 1000 || got.WeightedPipeline != 500 || got.WonValue != 400 {
		t.Errorf("expected pipeline 1000/500/400, got %v/%v/%v", got.PipelineValue, got.WeightedPipeline, got.WonValue)
	}
	if got.CollegeGrowth != 100 {
		t.Errorf("expected college growth 100 (2 vs 1), got %v", got.CollegeGrowth)
	}
	if got.DealGrowth != -50 {
		t.Errorf("expected deal growth -50 (1 vs 2), got %v", got.DealGrowth)
	}
	if len(got.DealsByStage) != 3 || got.DealsByStage[0].Category != ds.StageProposal {
		t.Errorf("expected stages in first-seen order, got %+v", got.DealsByStage)
	}
	if got.CoursePrices.Mean != 200 || got.CoursePrices.Min != 100 || got.CoursePrices.Max != 300 {
		t.Errorf("unexpected course price summary: %+v", got.CoursePrices)
	}
	if got.UpcomingMeetings == nil || got.DueFollowUps == nil {
		t.Error("expected empty, non-nil meeting lists")
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	got := buildDashboard(&repository.DashboardData{}, time.Now())

	if got.Colleges != 0 || got.PipelineValue != 0 || got.CollegeGrowth != 0 {
		t.Errorf("expected zero dashboard, got %+v", got)
	}
	if got.CoursePrices.Mean != 0 || got.CoursePrices.Categories == nil {
		t.Errorf("expected zero summary with empty categories, got %+v", got.CoursePrices)
	}
}

func TestMeetingViewRendersIST(t *testing.T) {
	m := ds.Meeting{ID: 1, ScheduledAt: time.Date(2024, 5, 1, 4, 30, 0, 0, time.UTC)}
	view := toMeeting(m)

	if view.ScheduledAtIST != "2024-05-01T10:00:00+05:30" {
		t.Errorf("expected IST rendering, got %s", view.ScheduledAtIST)
	}
	if view.NextFollowUp != nil {
		t.Errorf("expected nil follow-up, got %v", *view.NextFollowUp)
	}
}

func TestParseDate(t *testing.T) {
	s := "2024-07-09"
	d, err := parseDate(&s)
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if got := formatDate(d); got == nil || *got != s {
		t.Errorf("expected round trip to %s, got %v", s, got)
	}

	bad := "09/07/2024"
	if _, err := parseDate(&bad); err == nil {
		t.Error("expected error for non ISO date")
	}
	if d, err := parseDate(nil); d != nil || err != nil {
		t.Errorf("expected nil date for nil input, got %v %v", d, err)
	}
}

func TestCourseQuerySortsByPriceDescending(t *testing.T) {
	courses := []ds.Course{
		{ID: 1, Name: "Intro to Engineering", BasePrice: 100, Category: "eng"},
		{ID: 2, Name: "Marketing", BasePrice: 300, Category: "mgmt"},
		{ID: 3, Name: "Applied ENGINEERING", BasePrice: 200, Category: "eng"},
	}

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/courses?search=eng&sort=-price", nil)

	got := courseQuery(c, nil, nil).Apply(courses)

	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "Applied ENGINEERING,Intro to Engineering" {
		t.Errorf("unexpected order: %v", names)
	}
}
