package ds

import (
	"time"

	"github.com/lib/pq"
)

// Курс: глобальный (CollegeID == nil) или созданный для конкретного колледжа
type Course struct {
	ID            uint           `gorm:"primaryKey"`
	CollegeID     *uint          `gorm:"index;default:null"`
	Name          string         `gorm:"type:varchar(200);not null"`
	Description   string         `gorm:"type:text"`
	Category      string         `gorm:"type:varchar(100);index"`
	DurationHours int            `gorm:"type:int;default:0"`
	Capacity      int            `gorm:"type:int;default:0"`
	BasePrice     float64        `gorm:"type:decimal(12,2);not null;default:0"`
	MinPrice      float64        `gorm:"type:decimal(12,2);not null;default:0"`
	MaxPrice      float64        `gorm:"type:decimal(12,2);not null;default:0"`
	Tags          pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	College *College `gorm:"foreignKey:CollegeID;constraint:OnDelete:SET NULL" json:"-"`
}

// Источник содержимого темы
const (
	TopicManual   = "manual"
	TopicMarkdown = "markdown"
)

type CourseTopic struct {
	ID         uint   `gorm:"primaryKey"`
	CourseID   uint   `gorm:"not null;index:idx_course_topic_order"`
	OrderIndex int    `gorm:"not null;default:0;index:idx_course_topic_order"`
	Title      string `gorm:"type:varchar(200);not null"`
	Content    string `gorm:"type:text"`
	Source     string `gorm:"type:varchar(20);not null;default:'manual'"`
	SourceKey  string `gorm:"type:varchar(255)"` // объект в MinIO для импортированных тем
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// Многие-ко-многим: курсы, предложенные колледжу
type CollegeCourse struct {
	ID          uint     `gorm:"primaryKey"`
	CollegeID   uint     `gorm:"not null;uniqueIndex:idx_college_course"`
	CourseID    uint     `gorm:"not null;uniqueIndex:idx_college_course"`
	CustomPrice *float64 `gorm:"type:decimal(12,2);default:null"`
	CreatedAt   time.Time

	College College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	Course  Course  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}
