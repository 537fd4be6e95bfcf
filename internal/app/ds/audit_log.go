package ds

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Журнал изменений, только добавление
type AuditLog struct {
	ID        uint           `gorm:"primaryKey"`
	Table     string         `gorm:"column:table_name;type:varchar(50);not null;index:idx_audit_row"`
	RowID     uint           `gorm:"not null;index:idx_audit_row"`
	Action    string         `gorm:"type:varchar(10);not null"`
	OldValue  datatypes.JSON `gorm:"type:jsonb"`
	NewValue  datatypes.JSON `gorm:"type:jsonb"`
	UserID    *uint          `gorm:"default:null;index"`
	BatchID   *uuid.UUID     `gorm:"type:uuid;default:null;index"` // одна массовая операция
	CreatedAt time.Time      `gorm:"index"`
}
