package repository

import (
	"context"
	"time"

	"crm/internal/app/ds"
)

type MeetingFilter struct {
	CollegeID uint
	Outcome   string
	From      *time.Time // только встречи не раньше From
}

func (r *Repository) ListMeetings(ctx context.Context, f MeetingFilter) ([]ds.Meeting, error) {
	var meetings []ds.Meeting
	q := r.db.WithContext(ctx).Order("scheduled_at ASC")
	if f.CollegeID != 0 {
		q = q.Where("college_id = ?", f.CollegeID)
	}
	if f.Outcome != "" {
		q = q.Where("outcome = ?", f.Outcome)
	}
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", *f.From)
	}
	if err := q.Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (r *Repository) GetMeeting(ctx context.Context, id uint) (*ds.Meeting, error) {
	return getRow[ds.Meeting](ctx, r, id)
}

func (r *Repository) CreateMeeting(ctx context.Context, meeting *ds.Meeting, userID uint) error {
	meeting.CreatedBy = userRef(userID)
	meeting.ScheduledAt = meeting.ScheduledAt.UTC()
	return createRow(ctx, r, TableMeetings, meeting, func(m *ds.Meeting) uint { return m.ID }, userID)
}

func (r *Repository) UpdateMeeting(ctx context.Context, id uint, fields map[string]interface{}, userID uint) (*ds.Meeting, error) {
	return updateRow[ds.Meeting](ctx, r, TableMeetings, id, fields, userID, nil)
}

func (r *Repository) DeleteMeeting(ctx context.Context, id uint, userID uint) error {
	return deleteRow[ds.Meeting](ctx, r, TableMeetings, id, userID)
}

// DueFollowUps встречи, у которых дата следующего контакта наступила не позже day
func (r *Repository) DueFollowUps(ctx context.Context, day time.Time) ([]ds.Meeting, error) {
	var meetings []ds.Meeting
	err := r.db.WithContext(ctx).
		Where("next_follow_up IS NOT NULL AND next_follow_up <= ?", day.Format("2006-01-02")).
		Order("next_follow_up ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}
