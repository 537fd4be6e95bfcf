package repository

import (
	"context"
	"time"

	"crm/internal/app/ds"
)

// Снимок данных для дашборда; агрегаты считаются в обработчике заново на каждый запрос
type DashboardData struct {
	Colleges      []ds.College
	Deals         []ds.SalesDeal
	Courses       []ds.Course
	PricingModels []ds.PricingModel
	Contacts      int64
	Upcoming      []ds.Meeting
	DueFollowUps  []ds.Meeting
}

func (r *Repository) DashboardData(ctx context.Context, now time.Time) (*DashboardData, error) {
	var data DashboardData
	db := r.db.WithContext(ctx)

	if err := db.Find(&data.Colleges).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&data.Deals).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&data.Courses).Error; err != nil {
		return nil, err
	}
	if err := db.Find(&data.PricingModels).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&ds.Contact{}).Count(&data.Contacts).Error; err != nil {
		return nil, err
	}
	if err := db.Where("scheduled_at >= ? AND scheduled_at < ?", now, now.AddDate(0, 0, 7)).
		Order("scheduled_at ASC").Find(&data.Upcoming).Error; err != nil {
		return nil, err
	}

	due, err := r.DueFollowUps(ctx, now)
	if err != nil {
		return nil, err
	}
	data.DueFollowUps = due

	return &data, nil
}
