package repository

import (
	"context"
	"errors"

	"crm/internal/app/ds"
	"crm/internal/app/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAlreadyAssigned = errors.New("already assigned")

type CourseFilter struct {
	CollegeID  uint
	GlobalOnly bool // только курсы без колледжа
}

func (r *Repository) ListCourses(ctx context.Context, f CourseFilter) ([]ds.Course, error) {
	var courses []ds.Course
	q := r.db.WithContext(ctx).Order("name ASC")
	switch {
	case f.GlobalOnly:
		q = q.Where("college_id IS NULL")
	case f.CollegeID != 0:
		q = q.Where("college_id = ?", f.CollegeID)
	}
	if err := q.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *Repository) GetCourse(ctx context.Context, id uint) (*ds.Course, error) {
	return getRow[ds.Course](ctx, r, id)
}

// GetCoursesByIDs отсутствующие id просто пропускаются
func (r *Repository) GetCoursesByIDs(ctx context.Context, ids []uint) ([]ds.Course, error) {
	var courses []ds.Course
	if len(ids) == 0 {
		return courses, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *Repository) CreateCourse(ctx context.Context, course *ds.Course, userID uint) error {
	return createRow(ctx, r, TableCourses, course, func(c *ds.Course) uint { return c.ID }, userID)
}

func (r *Repository) UpdateCourse(ctx context.Context, id uint, fields map[string]interface{}, userID uint) (*ds.Course, error) {
	return updateRow[ds.Course](ctx, r, TableCourses, id, fields, userID, nil)
}

func (r *Repository) DeleteCourse(ctx context.Context, id uint, userID uint) error {
	return deleteRow[ds.Course](ctx, r, TableCourses, id, userID)
}

// UpdateCoursePrice - одно независимое изменение массовой операции, своя транзакция
func (r *Repository) UpdateCoursePrice(ctx context.Context, upd pricing.Update, userID uint, batchID uuid.UUID) error {
	_, err := updateRow[ds.Course](ctx, r, TableCourses, upd.ID, priceFields(upd.Band), userID, &batchID)
	return err
}

func priceFields(b pricing.Band) map[string]interface{} {
	return map[string]interface{}{
		"base_price": b.Base,
		"min_price":  b.Min,
		"max_price":  b.Max,
	}
}

// ============ Курсы колледжа (М-М) ============

type CollegeCourse struct {
	ds.Course
	CustomPrice *float64
}

func (r *Repository) CollegeCourses(ctx context.Context, collegeID uint) ([]CollegeCourse, error) {
	var links []ds.CollegeCourse
	err := r.db.WithContext(ctx).Preload("Course").Where("college_id = ?", collegeID).Find(&links).Error
	if err != nil {
		return nil, err
	}

	courses := make([]CollegeCourse, len(links))
	for i, l := range links {
		courses[i] = CollegeCourse{Course: l.Course, CustomPrice: l.CustomPrice}
	}
	return courses, nil
}

func (r *Repository) AssignCourse(ctx context.Context, collegeID, courseID uint, customPrice *float64, userID uint) error {
	link := ds.CollegeCourse{CollegeID: collegeID, CourseID: courseID, CustomPrice: customPrice}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyAssigned
		}
		return audit(tx, TableCollegeCourses, link.ID, ds.ActionInsert, nil, link, userID, nil)
	})
}

func (r *Repository) UnassignCourse(ctx context.Context, collegeID, courseID uint, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link ds.CollegeCourse
		if err := tx.Where("college_id = ? AND course_id = ?", collegeID, courseID).First(&link).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&ds.CollegeCourse{}, link.ID).Error; err != nil {
			return err
		}
		return audit(tx, TableCollegeCourses, link.ID, ds.ActionDelete, link, nil, userID, nil)
	})
}
