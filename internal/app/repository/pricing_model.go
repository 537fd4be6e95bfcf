package repository

import (
	"context"
	"time"

	"crm/internal/app/ds"
	"crm/internal/app/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repository) ListPricingModels(ctx context.Context, activeOnly bool) ([]ds.PricingModel, error) {
	var models []ds.PricingModel
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *Repository) GetPricingModel(ctx context.Context, id uint) (*ds.PricingModel, error) {
	return getRow[ds.PricingModel](ctx, r, id)
}

func (r *Repository) GetPricingModelsByIDs(ctx context.Context, ids []uint) ([]ds.PricingModel, error) {
	var models []ds.PricingModel
	if len(ids) == 0 {
		return models, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *Repository) CreatePricingModel(ctx context.Context, model *ds.PricingModel, userID uint) error {
	return createRow(ctx, r, TablePricingModels, model, func(m *ds.PricingModel) uint { return m.ID }, userID)
}

func (r *Repository) UpdatePricingModel(ctx context.Context, id uint, fields map[string]interface{}, userID uint) (*ds.PricingModel, error) {
	return updateRow[ds.PricingModel](ctx, r, TablePricingModels, id, fields, userID, nil)
}

func (r *Repository) DeletePricingModel(ctx context.Context, id uint, userID uint) error {
	return deleteRow[ds.PricingModel](ctx, r, TablePricingModels, id, userID)
}

func (r *Repository) UpdatePricingModelPrice(ctx context.Context, upd pricing.Update, userID uint, batchID uuid.UUID) error {
	_, err := updateRow[ds.PricingModel](ctx, r, TablePricingModels, upd.ID, priceFields(upd.Band), userID, &batchID)
	return err
}

// DeactivateExpired выключает модели, срок действия которых закончился до day.
// Возвращает количество выключенных.
func (r *Repository) DeactivateExpired(ctx context.Context, day time.Time) (int64, error) {
	var expired []ds.PricingModel
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND effective_to IS NOT NULL AND effective_to < ?", true, day.Format("2006-01-02")).
		Find(&expired).Error
	if err != nil {
		return 0, err
	}

	var n int64
	for _, m := range expired {
		if _, err := r.UpdatePricingModel(ctx, m.ID, map[string]interface{}{"is_active": false}, 0); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ============ Модели ценообразования колледжа (М-М) ============

func (r *Repository) CollegePricingModels(ctx context.Context, collegeID uint) ([]ds.PricingModel, error) {
	var links []ds.CollegePricingModel
	err := r.db.WithContext(ctx).Preload("PricingModel").Where("college_id = ?", collegeID).Find(&links).Error
	if err != nil {
		return nil, err
	}

	models := make([]ds.PricingModel, len(links))
	for i, l := range links {
		models[i] = l.PricingModel
	}
	return models, nil
}

func (r *Repository) AssignPricingModel(ctx context.Context, collegeID, modelID uint, userID uint) error {
	link := ds.CollegePricingModel{CollegeID: collegeID, PricingModelID: modelID}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyAssigned
		}
		return audit(tx, TableCollegePricingModels, link.ID, ds.ActionInsert, nil, link, userID, nil)
	})
}

func (r *Repository) UnassignPricingModel(ctx context.Context, collegeID, modelID uint, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link ds.CollegePricingModel
		if err := tx.Where("college_id = ? AND pricing_model_id = ?", collegeID, modelID).First(&link).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&ds.CollegePricingModel{}, link.ID).Error; err != nil {
			return err
		}
		return audit(tx, TableCollegePricingModels, link.ID, ds.ActionDelete, link, nil, userID, nil)
	})
}
