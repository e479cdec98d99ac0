package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SearchDataFilters are optional equality filters, always ANDed with the
// project id.
type SearchDataFilters struct {
	UserID   *string
	DataType *string
}

type DynamicDataRepo interface {
	Insert(ctx context.Context, d *model.DynamicData) error
	// ListByProject pages with a caller-supplied limit and offset; clamping
	// is the HTTP layer's concern.
	ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]model.DynamicData, error)
	CountByProject(ctx context.Context, projectID uint) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.DynamicData, error)
	// Update replaces the payload and refreshes updated_at.
	Update(ctx context.Context, id int64, data datatypes.JSON) error
	// Delete removes the row for good; dynamic data has no soft delete.
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, projectID uint, filters SearchDataFilters) ([]model.DynamicData, error)
}

type dynamicDataRepo struct{ db *gorm.DB }

func NewDynamicDataRepo(db *gorm.DB) DynamicDataRepo {
	return &dynamicDataRepo{db: db}
}

func (r *dynamicDataRepo) Insert(ctx context.Context, d *model.DynamicData) error {
	if r.db == nil {
		return ErrUnavailable
	}
	if d.ProjectID == 0 || len(d.Data) == 0 {
		return fmt.Errorf("%w: project id and data payload are required", ErrValidation)
	}
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *dynamicDataRepo) ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]model.DynamicData, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var items []model.DynamicData
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *dynamicDataRepo) CountByProject(ctx context.Context, projectID uint) (int64, error) {
	if r.db == nil {
		return 0, ErrUnavailable
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DynamicData{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *dynamicDataRepo) GetByID(ctx context.Context, id int64) (*model.DynamicData, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var d model.DynamicData
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dynamicDataRepo) Update(ctx context.Context, id int64, data datatypes.JSON) error {
	if r.db == nil {
		return ErrUnavailable
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: data payload is required", ErrValidation)
	}
	return r.db.WithContext(ctx).Model(&model.DynamicData{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"data":       data,
			"updated_at": time.Now(),
		}).Error
}

func (r *dynamicDataRepo) Delete(ctx context.Context, id int64) error {
	if r.db == nil {
		return ErrUnavailable
	}
	return r.db.WithContext(ctx).Delete(&model.DynamicData{}, id).Error
}

func (r *dynamicDataRepo) Search(ctx context.Context, projectID uint, filters SearchDataFilters) ([]model.DynamicData, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.DataType != nil {
		q = q.Where("data_type = ?", *filters.DataType)
	}

	var items []model.DynamicData
	return items, q.Order("created_at DESC, id DESC").Find(&items).Error
}
