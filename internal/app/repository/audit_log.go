package repository

import (
	"context"

	"crm/internal/app/ds"
)

type AuditFilter struct {
	Table string
	RowID uint
	Limit int
}

// Журнал аудита только читается, записи создает audit() внутри изменений
func (r *Repository) ListAuditLogs(ctx context.Context, f AuditFilter) ([]ds.AuditLog, error) {
	var logs []ds.AuditLog
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if f.Table != "" {
		q = q.Where("table_name = ?", f.Table)
	}
	if f.RowID != 0 {
		q = q.Where("row_id = ?", f.RowID)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if err := q.Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
