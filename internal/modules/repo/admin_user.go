package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminUserRepo interface {
	// Upsert inserts an admin account or, when the email already exists,
	// overwrites the password hash and name only.
	Upsert(ctx context.Context, admin *model.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	GetByID(ctx context.Context, id uint) (*model.AdminUser, error)
	TouchLastSignedIn(ctx context.Context, id uint, at time.Time) error
}

type adminUserRepo struct{ db *gorm.DB }

func NewAdminUserRepo(db *gorm.DB) AdminUserRepo {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) Upsert(ctx context.Context, admin *model.AdminUser) error {
	if r.db == nil {
		return ErrUnavailable
	}
	if admin.Email == "" || admin.PasswordHash == "" {
		return fmt.Errorf("%w: email and password hash are required", ErrValidation)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password_hash": admin.PasswordHash,
			"name":          admin.Name,
		}),
	}).Create(admin).Error
}

func (r *adminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var admin model.AdminUser
	err := r.db.WithContext(ctx).Where(&model.AdminUser{Email: email}).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepo) GetByID(ctx context.Context, id uint) (*model.AdminUser, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var admin model.AdminUser
	err := r.db.WithContext(ctx).First(&admin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepo) TouchLastSignedIn(ctx context.Context, id uint, at time.Time) error {
	if r.db == nil {
		return ErrUnavailable
	}
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_signed_in_at", at).Error
}
