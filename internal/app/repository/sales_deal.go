package repository

import (
	"context"

	"crm/internal/app/ds"
)

func (r *Repository) ListDeals(ctx context.Context, collegeID uint) ([]ds.SalesDeal, error) {
	var deals []ds.SalesDeal
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if collegeID != 0 {
		q = q.Where("college_id = ?", collegeID)
	}
	if err := q.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *Repository) GetDeal(ctx context.Context, id uint) (*ds.SalesDeal, error) {
	return getRow[ds.SalesDeal](ctx, r, id)
}

func (r *Repository) CreateDeal(ctx context.Context, deal *ds.SalesDeal, userID uint) error {
	deal.CreatedBy = userRef(userID)
	return createRow(ctx, r, TableSalesDeals, deal, func(d *ds.SalesDeal) uint { return d.ID }, userID)
}

func (r *Repository) UpdateDeal(ctx context.Context, id uint, fields map[string]interface{}, userID uint) (*ds.SalesDeal, error) {
	return updateRow[ds.SalesDeal](ctx, r, TableSalesDeals, id, fields, userID, nil)
}

func (r *Repository) DeleteDeal(ctx context.Context, id uint, userID uint) error {
	return deleteRow[ds.SalesDeal](ctx, r, TableSalesDeals, id, userID)
}
