package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/datanest-io/datanest/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error)
	// GetByID returns (nil, nil) when the project does not exist, including
	// soft-deleted rows which stay retrievable.
	GetByID(ctx context.Context, id uint) (*model.Project, error)
	Update(ctx context.Context, id uint, patch map[string]interface{}) error
	// SoftDelete clears is_active and keeps the row.
	SoftDelete(ctx context.Context, id uint) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	if r.db == nil {
		return ErrUnavailable
	}
	if p.OwnerID == 0 || p.Name == "" {
		return fmt.Errorf("%w: owner id and name are required", ErrValidation)
	}
	p.IsActive = true
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var p model.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Update(ctx context.Context, id uint, patch map[string]interface{}) error {
	if r.db == nil {
		return ErrUnavailable
	}
	if len(patch) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Updates(patch).Error
}

func (r *projectRepo) SoftDelete(ctx context.Context, id uint) error {
	if r.db == nil {
		return ErrUnavailable
	}
	return r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
