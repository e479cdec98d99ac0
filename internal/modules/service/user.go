package service

import (
	"context"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
)

type UserService interface {
	Upsert(ctx context.Context, in repo.UpsertUserInput) error
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)
}

type userService struct{ r repo.UserRepo }

func NewUserService(r repo.UserRepo) UserService {
	return &userService{r: r}
}

func (s *userService) Upsert(ctx context.Context, in repo.UpsertUserInput) error {
	return s.r.Upsert(ctx, in)
}

func (s *userService) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	return s.r.GetByOpenID(ctx, openID)
}
