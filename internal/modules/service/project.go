package service

import (
	"context"
	"errors"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"gorm.io/datatypes"
)

// UpdateProjectInput is a partial patch; nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Schema      datatypes.JSONMap
}

type ProjectService interface {
	Create(ctx context.Context, ownerID uint, name, description string, schema datatypes.JSONMap) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error)
	GetByID(ctx context.Context, id uint) (*model.Project, error)
	Update(ctx context.Context, id uint, in UpdateProjectInput) error
	SoftDelete(ctx context.Context, id uint) error
}

type projectService struct{ r repo.ProjectRepo }

func NewProjectService(r repo.ProjectRepo) ProjectService {
	return &projectService{r: r}
}

func (s *projectService) Create(ctx context.Context, ownerID uint, name, description string, schema datatypes.JSONMap) (*model.Project, error) {
	project := &model.Project{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Schema:      schema,
	}
	if err := s.r.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	return s.r.ListByOwner(ctx, ownerID)
}

func (s *projectService) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	if id == 0 {
		return nil, errors.New("project id is empty")
	}
	return s.r.GetByID(ctx, id)
}

func (s *projectService) Update(ctx context.Context, id uint, in UpdateProjectInput) error {
	patch := map[string]interface{}{}
	if in.Name != nil {
		patch["name"] = *in.Name
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if in.Schema != nil {
		patch["schema"] = in.Schema
	}
	return s.r.Update(ctx, id, patch)
}

func (s *projectService) SoftDelete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("project id is empty")
	}
	return s.r.SoftDelete(ctx, id)
}
