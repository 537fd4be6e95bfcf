package repository

import (
	"context"

	"crm/internal/app/ds"
)

const (
	TableColleges             = "colleges"
	TableContacts             = "contacts"
	TableMeetings             = "meetings"
	TableCourses              = "courses"
	TableCourseTopics         = "course_topics"
	TableCollegeCourses       = "college_courses"
	TablePricingModels        = "pricing_models"
	TableCollegePricingModels = "college_pricing_models"
	TableSalesDeals           = "sales_deals"
)

// Получить колледжи, при необходимости только с заданным статусом
func (r *Repository) ListColleges(ctx context.Context, status string) ([]ds.College, error) {
	var colleges []ds.College
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&colleges).Error; err != nil {
		return nil, err
	}
	return colleges, nil
}

func (r *Repository) GetCollege(ctx context.Context, id uint) (*ds.College, error) {
	return getRow[ds.College](ctx, r, id)
}

func (r *Repository) CreateCollege(ctx context.Context, college *ds.College, userID uint) error {
	college.CreatedBy = userRef(userID)
	if college.Status == "" {
		college.Status = ds.CollegeProspect
	}
	return createRow(ctx, r, TableColleges, college, func(c *ds.College) uint { return c.ID }, userID)
}

// Обновление полей колледжа. Удаления колледжей нет.
func (r *Repository) UpdateCollege(ctx context.Context, id uint, fields map[string]interface{}, userID uint) (*ds.College, error) {
	return updateRow[ds.College](ctx, r, TableColleges, id, fields, userID, nil)
}

func (r *Repository) UpdateCollegeStatus(ctx context.Context, id uint, status string, userID uint) (*ds.College, error) {
	return r.UpdateCollege(ctx, id, map[string]interface{}{"status": status}, userID)
}
