package repository

import (
	"context"

	"crm/internal/app/ds"
	"crm/internal/app/role"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	return getRow[ds.User](ctx, r, id)
}

// UserRole читает текущую роль пользователя, ErrNotFound если его нет
func (r *Repository) UserRole(ctx context.Context, id uint) (role.Role, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Select("role").First(&user, id).Error
	if err != nil {
		return role.Viewer, notFound(err)
	}
	return user.Role, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *Repository) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(ctx context.Context, email, passwordHash, fullName string, userRole role.Role) (*ds.User, error) {
	user := ds.User{
		Email:    email,
		Password: passwordHash,
		FullName: fullName,
		Role:     userRole,
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ds.User{}).Count(&count).Error
	return count, err
}

// UpdateUserRole меняет роль; уже выданные токены сохраняют старую роль до истечения
func (r *Repository) UpdateUserRole(ctx context.Context, id uint, userRole role.Role) (*ds.User, error) {
	res := r.db.WithContext(ctx).Model(&ds.User{}).Where("id = ?", id).Update("role", userRole)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetUserByID(ctx, id)
}
