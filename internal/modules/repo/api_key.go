package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"gorm.io/gorm"
)

type ApiKeyRepo interface {
	Create(ctx context.Context, k *model.ApiKey) error
	ListByProject(ctx context.Context, projectID uint) ([]model.ApiKey, error)
	// GetByKey resolves an opaque key string; (nil, nil) when unknown.
	GetByKey(ctx context.Context, key string) (*model.ApiKey, error)
	GetByID(ctx context.Context, id uint) (*model.ApiKey, error)
	// Revoke clears is_active and keeps the row.
	Revoke(ctx context.Context, id uint) error
	TouchLastUsed(ctx context.Context, id uint, at time.Time) error
}

type apiKeyRepo struct{ db *gorm.DB }

func NewApiKeyRepo(db *gorm.DB) ApiKeyRepo {
	return &apiKeyRepo{db: db}
}

func (r *apiKeyRepo) Create(ctx context.Context, k *model.ApiKey) error {
	if r.db == nil {
		return ErrUnavailable
	}
	if k.ProjectID == 0 || k.Name == "" || k.Key == "" {
		return fmt.Errorf("%w: project id, name and key are required", ErrValidation)
	}
	if len(k.Permissions) == 0 {
		k.Permissions = []string{model.PermissionRead, model.PermissionWrite}
	}
	k.IsActive = true
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *apiKeyRepo) ListByProject(ctx context.Context, projectID uint) ([]model.ApiKey, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var keys []model.ApiKey
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&keys).Error
	return keys, err
}

func (r *apiKeyRepo) GetByKey(ctx context.Context, key string) (*model.ApiKey, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var k model.ApiKey
	err := r.db.WithContext(ctx).Where(&model.ApiKey{Key: key}).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *apiKeyRepo) GetByID(ctx context.Context, id uint) (*model.ApiKey, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var k model.ApiKey
	err := r.db.WithContext(ctx).First(&k, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *apiKeyRepo) Revoke(ctx context.Context, id uint) error {
	if r.db == nil {
		return ErrUnavailable
	}
	return r.db.WithContext(ctx).Model(&model.ApiKey{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *apiKeyRepo) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	if r.db == nil {
		return ErrUnavailable
	}
	return r.db.WithContext(ctx).Model(&model.ApiKey{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}
