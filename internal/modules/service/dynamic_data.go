package service

import (
	"context"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"gorm.io/datatypes"
)

type InsertDataInput struct {
	ProjectID uint
	UserID    *string
	DataType  *string
	Data      datatypes.JSON
	IsPublic  bool
}

type ListDataInput struct {
	ProjectID uint
	Limit     int
	Offset    int
}

type ListDataOutput struct {
	Items []model.DynamicData `json:"items"`
	Total int64               `json:"total"`
}

type DynamicDataService interface {
	Insert(ctx context.Context, in InsertDataInput) (*model.DynamicData, error)
	List(ctx context.Context, in ListDataInput) (*ListDataOutput, error)
	GetByID(ctx context.Context, id int64) (*model.DynamicData, error)
	Update(ctx context.Context, id int64, data datatypes.JSON) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, projectID uint, filters repo.SearchDataFilters) ([]model.DynamicData, error)
}

type dynamicDataService struct{ r repo.DynamicDataRepo }

func NewDynamicDataService(r repo.DynamicDataRepo) DynamicDataService {
	return &dynamicDataService{r: r}
}

func (s *dynamicDataService) Insert(ctx context.Context, in InsertDataInput) (*model.DynamicData, error) {
	d := &model.DynamicData{
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		DataType:  in.DataType,
		Data:      in.Data,
		IsPublic:  in.IsPublic,
	}
	if err := s.r.Insert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *dynamicDataService) List(ctx context.Context, in ListDataInput) (*ListDataOutput, error) {
	items, err := s.r.ListByProject(ctx, in.ProjectID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	total, err := s.r.CountByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	return &ListDataOutput{Items: items, Total: total}, nil
}

func (s *dynamicDataService) GetByID(ctx context.Context, id int64) (*model.DynamicData, error) {
	return s.r.GetByID(ctx, id)
}

func (s *dynamicDataService) Update(ctx context.Context, id int64, data datatypes.JSON) error {
	return s.r.Update(ctx, id, data)
}

func (s *dynamicDataService) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}

func (s *dynamicDataService) Search(ctx context.Context, projectID uint, filters repo.SearchDataFilters) ([]model.DynamicData, error) {
	return s.r.Search(ctx, projectID, filters)
}
