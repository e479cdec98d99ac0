package service

import (
	"context"
	"fmt"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"github.com/datanest-io/datanest/internal/pkg/utils"
)

type ApiKeyService interface {
	// Create mints a fresh opaque key token for the project. Permissions
	// default to read+write when empty.
	Create(ctx context.Context, projectID uint, name string, permissions []string) (*model.ApiKey, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.ApiKey, error)
	GetByID(ctx context.Context, id uint) (*model.ApiKey, error)
	Revoke(ctx context.Context, id uint) error
	// Resolve maps a presented key string to an active ApiKey, refreshing
	// last_used_at best-effort. Unknown or revoked keys yield (nil, nil).
	Resolve(ctx context.Context, key string) (*model.ApiKey, error)
}

type apiKeyService struct {
	r         repo.ApiKeyRepo
	keyPrefix string
}

func NewApiKeyService(r repo.ApiKeyRepo, keyPrefix string) ApiKeyService {
	return &apiKeyService{r: r, keyPrefix: keyPrefix}
}

func (s *apiKeyService) Create(ctx context.Context, projectID uint, name string, permissions []string) (*model.ApiKey, error) {
	token, err := utils.GenerateKey(s.keyPrefix, 40)
	if err != nil {
		return nil, fmt.Errorf("generate key token: %w", err)
	}

	key := &model.ApiKey{
		ProjectID:   projectID,
		Key:         token,
		Name:        name,
		Permissions: permissions,
	}
	if err := s.r.Create(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *apiKeyService) ListByProject(ctx context.Context, projectID uint) ([]model.ApiKey, error) {
	return s.r.ListByProject(ctx, projectID)
}

func (s *apiKeyService) GetByID(ctx context.Context, id uint) (*model.ApiKey, error) {
	return s.r.GetByID(ctx, id)
}

func (s *apiKeyService) Revoke(ctx context.Context, id uint) error {
	return s.r.Revoke(ctx, id)
}

func (s *apiKeyService) Resolve(ctx context.Context, key string) (*model.ApiKey, error) {
	k, err := s.r.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if k == nil || !k.IsActive {
		return nil, nil
	}

	// Best effort; key resolution must not fail on a missed touch.
	_ = s.r.TouchLastUsed(ctx, k.ID, time.Now())

	return k, nil
}
