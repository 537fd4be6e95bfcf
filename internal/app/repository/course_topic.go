package repository

import (
	"context"
	"errors"
	"fmt"

	"crm/internal/app/ds"
	"crm/internal/app/markdown"

	"gorm.io/gorm"
)

func (r *Repository) ListTopics(ctx context.Context, courseID uint) ([]ds.CourseTopic, error) {
	var topics []ds.CourseTopic
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("order_index ASC, id ASC").Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *Repository) GetTopic(ctx context.Context, courseID, topicID uint) (*ds.CourseTopic, error) {
	var topic ds.CourseTopic
	err := r.db.WithContext(ctx).Where("id = ? AND course_id = ?", topicID, courseID).First(&topic).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &topic, nil
}

func nextOrderIndex(tx *gorm.DB, courseID uint) (int, error) {
	var max *int
	err := tx.Model(&ds.CourseTopic{}).Where("course_id = ?", courseID).Select("MAX(order_index)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// CreateTopic добавляет тему в конец курса
func (r *Repository) CreateTopic(ctx context.Context, topic *ds.CourseTopic, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		idx, err := nextOrderIndex(tx, topic.CourseID)
		if err != nil {
			return err
		}
		topic.OrderIndex = idx
		if topic.Source == "" {
			topic.Source = ds.TopicManual
		}
		if err := tx.Create(topic).Error; err != nil {
			return err
		}
		return audit(tx, TableCourseTopics, topic.ID, ds.ActionInsert, nil, topic, userID, nil)
	})
}

func (r *Repository) UpdateTopic(ctx context.Context, courseID, topicID uint, fields map[string]interface{}, userID uint) (*ds.CourseTopic, error) {
	if _, err := r.GetTopic(ctx, courseID, topicID); err != nil {
		return nil, err
	}
	return updateRow[ds.CourseTopic](ctx, r, TableCourseTopics, topicID, fields, userID, nil)
}

func (r *Repository) DeleteTopic(ctx context.Context, courseID, topicID uint, userID uint) error {
	if _, err := r.GetTopic(ctx, courseID, topicID); err != nil {
		return err
	}
	return deleteRow[ds.CourseTopic](ctx, r, TableCourseTopics, topicID, userID)
}

// ErrInvalidTopicOrder список тем не совпадает с темами курса
var ErrInvalidTopicOrder = errors.New("invalid topic order")

// ReorderTopics присваивает order_index по порядку topicIDs.
// Список должен содержать ровно все темы курса.
func (r *Repository) ReorderTopics(ctx context.Context, courseID uint, topicIDs []uint, userID uint) ([]ds.CourseTopic, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []ds.CourseTopic
		if err := tx.Where("course_id = ?", courseID).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) != len(topicIDs) {
			return fmt.Errorf("%w: expected %d topic ids, got %d", ErrInvalidTopicOrder, len(existing), len(topicIDs))
		}
		known := make(map[uint]bool, len(existing))
		for _, t := range existing {
			known[t.ID] = true
		}

		for i, id := range topicIDs {
			if !known[id] {
				return fmt.Errorf("%w: topic %d does not belong to course %d", ErrInvalidTopicOrder, id, courseID)
			}
			delete(known, id)
			if err := tx.Model(&ds.CourseTopic{}).Where("id = ?", id).Update("order_index", i).Error; err != nil {
				return err
			}
		}
		return audit(tx, TableCourseTopics, courseID, ds.ActionUpdate, nil, topicIDs, userID, nil)
	})
	if err != nil {
		return nil, err
	}
	return r.ListTopics(ctx, courseID)
}

// ImportTopics добавляет темы из разобранного Markdown после существующих
func (r *Repository) ImportTopics(ctx context.Context, courseID uint, sections []markdown.Section, sourceKey string, userID uint) ([]ds.CourseTopic, error) {
	topics := make([]ds.CourseTopic, 0, len(sections))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		idx, err := nextOrderIndex(tx, courseID)
		if err != nil {
			return err
		}
		for i, s := range sections {
			topics = append(topics, ds.CourseTopic{
				CourseID:   courseID,
				OrderIndex: idx + i,
				Title:      s.Title,
				Content:    s.Content,
				Source:     ds.TopicMarkdown,
				SourceKey:  sourceKey,
			})
		}
		if len(topics) == 0 {
			return nil
		}
		if err := tx.Create(&topics).Error; err != nil {
			return err
		}
		for i := range topics {
			if err := audit(tx, TableCourseTopics, topics[i].ID, ds.ActionInsert, nil, topics[i], userID, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return topics, nil
}
