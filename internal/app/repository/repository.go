package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"crm/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Repository struct {
	db *gorm.DB
}

// Tables возвращает все модели в порядке миграции
func Tables() []interface{} {
	return []interface{}{
		&ds.User{},
		&ds.College{},
		&ds.Contact{},
		&ds.Meeting{},
		&ds.Course{},
		&ds.CourseTopic{},
		&ds.CollegeCourse{},
		&ds.PricingModel{},
		&ds.CollegePricingModel{},
		&ds.SalesDeal{},
		&ds.AuditLog{},
	}
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(Tables()...)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// NewWithDB оборачивает уже открытое соединение без миграции
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func userRef(userID uint) *uint {
	if userID == 0 {
		return nil
	}
	return &userID
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

// audit пишет запись журнала в той же транзакции, что и изменение
func audit(tx *gorm.DB, table string, rowID uint, action string, oldValue, newValue interface{}, userID uint, batchID *uuid.UUID) error {
	entry := ds.AuditLog{
		Table:    table,
		RowID:    rowID,
		Action:   action,
		OldValue: toJSON(oldValue),
		NewValue: toJSON(newValue),
		UserID:   userRef(userID),
		BatchID:  batchID,
	}
	return tx.Create(&entry).Error
}

// Общие CRUD-операции с аудитом

func createRow[T any](ctx context.Context, r *Repository, table string, row *T, idOf func(*T) uint, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return audit(tx, table, idOf(row), ds.ActionInsert, nil, row, userID, nil)
	})
}

func updateRow[T any](ctx context.Context, r *Repository, table string, id uint, fields map[string]interface{}, userID uint, batchID *uuid.UUID) (*T, error) {
	var updated T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old T
		if err := tx.First(&old, id).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		return audit(tx, table, id, ds.ActionUpdate, old, updated, userID, batchID)
	})
	if err != nil {
		return nil, notFound(err)
	}
	return &updated, nil
}

func deleteRow[T any](ctx context.Context, r *Repository, table string, id uint, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old T
		if err := tx.First(&old, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(new(T), id).Error; err != nil {
			return err
		}
		return audit(tx, table, id, ds.ActionDelete, old, nil, userID, nil)
	})
	return notFound(err)
}

func getRow[T any](ctx context.Context, r *Repository, id uint) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}
