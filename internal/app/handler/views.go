package handler

import (
	"encoding/json"
	"time"

	"crm/internal/app/analytics"
	"crm/internal/app/ds"
	"crm/internal/app/dto"
	"crm/internal/app/repository"

	"gorm.io/datatypes"
)

// Время встреч показывается дополнительно в IST (+05:30)
var ist = time.FixedZone("IST", 5*60*60+30*60)

const dateLayout = "2006-01-02"

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

func parseDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

func toSummary(s analytics.Summary) dto.SummaryResponse {
	categories := make([]dto.CategoryResponse, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = dto.CategoryResponse{Category: c.Category, Count: c.Count, Sum: c.Sum}
	}
	return dto.SummaryResponse{
		Count:      s.Count,
		Sum:        s.Sum,
		Mean:       s.Mean,
		Min:        s.Min,
		Max:        s.Max,
		Categories: categories,
	}
}

func toCollege(c ds.College) dto.CollegeResponse {
	return dto.CollegeResponse{
		ID:         c.ID,
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		Country:    c.Country,
		PostalCode: c.PostalCode,
		Website:    c.Website,
		Status:     c.Status,
		Notes:      c.Notes,
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toContact(c ds.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:          c.ID,
		CollegeID:   c.CollegeID,
		Name:        c.Name,
		Designation: c.Designation,
		Email:       c.Email,
		Phone:       c.Phone,
		IsPrimary:   c.IsPrimary,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toMeeting(m ds.Meeting) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:             m.ID,
		CollegeID:      m.CollegeID,
		Title:          m.Title,
		ScheduledAt:    m.ScheduledAt.UTC(),
		ScheduledAtIST: m.ScheduledAt.In(ist).Format(time.RFC3339),
		Location:       m.Location,
		Agenda:         m.Agenda,
		Outcome:        m.Outcome,
		NextFollowUp:   formatDate(m.NextFollowUp),
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toCourse(c ds.Course) dto.CourseResponse {
	tags := []string(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return dto.CourseResponse{
		ID:            c.ID,
		CollegeID:     c.CollegeID,
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		DurationHours: c.DurationHours,
		Capacity:      c.Capacity,
		BasePrice:     c.BasePrice,
		MinPrice:      c.MinPrice,
		MaxPrice:      c.MaxPrice,
		Tags:          tags,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toCollegeCourse(c repository.CollegeCourse) dto.CollegeCourseResponse {
	return dto.CollegeCourseResponse{
		CourseResponse: toCourse(c.Course),
		CustomPrice:    c.CustomPrice,
	}
}

func toTopic(t ds.CourseTopic) dto.TopicResponse {
	return dto.TopicResponse{
		ID:         t.ID,
		CourseID:   t.CourseID,
		OrderIndex: t.OrderIndex,
		Title:      t.Title,
		Content:    t.Content,
		Source:     t.Source,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toPricingModel(p ds.PricingModel) dto.PricingModelResponse {
	return dto.PricingModelResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Tier:            p.Tier,
		BasePrice:       p.BasePrice,
		MinPrice:        p.MinPrice,
		MaxPrice:        p.MaxPrice,
		DiscountPercent: p.DiscountPercent,
		MarkupPercent:   p.MarkupPercent,
		Currency:        p.Currency,
		EffectiveFrom:   formatDate(p.EffectiveFrom),
		EffectiveTo:     formatDate(p.EffectiveTo),
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDeal(d ds.SalesDeal) dto.DealResponse {
	return dto.DealResponse{
		ID:            d.ID,
		CollegeID:     d.CollegeID,
		Title:         d.Title,
		Value:         d.Value,
		Currency:      d.Currency,
		Probability:   d.Probability,
		Stage:         d.Stage,
		ExpectedClose: formatDate(d.ExpectedClose),
		Notes:         d.Notes,
		CreatedBy:     d.CreatedBy,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toAuditLog(a ds.AuditLog) dto.AuditLogResponse {
	resp := dto.AuditLogResponse{
		ID:        a.ID,
		Table:     a.Table,
		RowID:     a.RowID,
		Action:    a.Action,
		OldValue:  rawJSON(a.OldValue),
		NewValue:  rawJSON(a.NewValue),
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
	}
	if a.BatchID != nil {
		s := a.BatchID.String()
		resp.BatchID = &s
	}
	return resp
}

func rawJSON(v datatypes.JSON) interface{} {
	if len(v) == 0 {
		return nil
	}
	return json.RawMessage(v)
}

// mapSlice применяет конвертер к каждому элементу, пустой результат не nil
func mapSlice[S, D any](items []S, conv func(S) D) []D {
	out := make([]D, len(items))
	for i, item := range items {
		out[i] = conv(item)
	}
	return out
}
