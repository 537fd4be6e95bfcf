package repository

import (
	"context"

	"crm/internal/app/ds"
)

// Контакты, опционально только одного колледжа
func (r *Repository) ListContacts(ctx context.Context, collegeID uint) ([]ds.Contact, error) {
	var contacts []ds.Contact
	q := r.db.WithContext(ctx).Order("is_primary DESC, name ASC")
	if collegeID != 0 {
		q = q.Where("college_id = ?", collegeID)
	}
	if err := q.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *Repository) GetContact(ctx context.Context, id uint) (*ds.Contact, error) {
	return getRow[ds.Contact](ctx, r, id)
}

func (r *Repository) CreateContact(ctx context.Context, contact *ds.Contact, userID uint) error {
	return createRow(ctx, r, TableContacts, contact, func(c *ds.Contact) uint { return c.ID }, userID)
}

func (r *Repository) UpdateContact(ctx context.Context, id uint, fields map[string]interface{}, userID uint) (*ds.Contact, error) {
	return updateRow[ds.Contact](ctx, r, TableContacts, id, fields, userID, nil)
}

func (r *Repository) DeleteContact(ctx context.Context, id uint, userID uint) error {
	return deleteRow[ds.Contact](ctx, r, TableContacts, id, userID)
}
