package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockApiKeyRepo is a mock implementation of repo.ApiKeyRepo
type MockApiKeyRepo struct {
	mock.Mock
}

func (m *MockApiKeyRepo) Create(ctx context.Context, k *model.ApiKey) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

func (m *MockApiKeyRepo) ListByProject(ctx context.Context, projectID uint) ([]model.ApiKey, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepo) GetByKey(ctx context.Context, key string) (*model.ApiKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepo) GetByID(ctx context.Context, id uint) (*model.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepo) Revoke(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApiKeyRepo) TouchLastUsed(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func TestApiKeyService_Create(t *testing.T) {
	repoMock := &MockApiKeyRepo{}
	repoMock.On("Create", mock.Anything, mock.MatchedBy(func(k *model.ApiKey) bool {
		return k.ProjectID == 7 &&
			k.Name == "ci" &&
			strings.HasPrefix(k.Key, "dk-") &&
			len(k.Key) == len("dk-")+40
	})).Return(nil)

	svc := NewApiKeyService(repoMock, "dk-")
	key, err := svc.Create(context.Background(), 7, "ci", nil)

	assert.NoError(t, err)
	assert.NotNil(t, key)
	repoMock.AssertExpectations(t)

	// two keys never share a token
	repoMock.On("Create", mock.Anything, mock.Anything).Return(nil)
	other, err := svc.Create(context.Background(), 7, "ci2", nil)
	assert.NoError(t, err)
	assert.NotEqual(t, key.Key, other.Key)
}

func TestApiKeyService_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*MockApiKeyRepo)
		wantKey bool
	}{
		{
			name: "unknown key resolves to nil",
			setup: func(r *MockApiKeyRepo) {
				r.On("GetByKey", mock.Anything, "dk-unknown").Return(nil, nil)
			},
		},
		{
			name: "revoked key resolves to nil",
			setup: func(r *MockApiKeyRepo) {
				r.On("GetByKey", mock.Anything, "dk-unknown").Return(&model.ApiKey{
					ID: 3, ProjectID: 7, Key: "dk-unknown", IsActive: false,
				}, nil)
			},
		},
		{
			name: "active key resolves and refreshes last used",
			setup: func(r *MockApiKeyRepo) {
				r.On("GetByKey", mock.Anything, "dk-unknown").Return(&model.ApiKey{
					ID: 3, ProjectID: 7, Key: "dk-unknown", IsActive: true,
				}, nil)
				r.On("TouchLastUsed", mock.Anything, uint(3), mock.Anything).Return(nil)
			},
			wantKey: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := &MockApiKeyRepo{}
			tt.setup(repoMock)

			svc := NewApiKeyService(repoMock, "dk-")
			key, err := svc.Resolve(context.Background(), "dk-unknown")

			assert.NoError(t, err)
			if tt.wantKey {
				assert.NotNil(t, key)
				assert.Equal(t, uint(7), key.ProjectID)
			} else {
				assert.Nil(t, key)
			}
			repoMock.AssertExpectations(t)
		})
	}
}

func TestApiKeyModel_Can(t *testing.T) {
	readOnly := &model.ApiKey{Permissions: []string{model.PermissionRead}}
	assert.True(t, readOnly.Can(model.PermissionRead))
	assert.False(t, readOnly.Can(model.PermissionWrite))

	full := &model.ApiKey{Permissions: []string{model.PermissionRead, model.PermissionWrite}}
	assert.True(t, full.Can(model.PermissionWrite))
}
