package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAdminUserRepo is a mock implementation of repo.AdminUserRepo
type MockAdminUserRepo struct {
	mock.Mock
}

func (m *MockAdminUserRepo) Upsert(ctx context.Context, admin *model.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepo) GetByID(ctx context.Context, id uint) (*model.AdminUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminUser), args.Error(1)
}

func (m *MockAdminUserRepo) TouchLastSignedIn(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func TestHashPassword_NonDeterministic(t *testing.T) {
	svc := NewAdminAuthService(&MockAdminUserRepo{}, 4)

	h1, err := svc.HashPassword("hunter2")
	assert.NoError(t, err)
	h2, err := svc.HashPassword("hunter2")
	assert.NoError(t, err)

	// distinct salts, distinct hashes
	assert.NotEqual(t, h1, h2)

	assert.True(t, svc.ComparePassword("hunter2", h1))
	assert.True(t, svc.ComparePassword("hunter2", h2))
	assert.False(t, svc.ComparePassword("hunter3", h1))
	assert.False(t, svc.ComparePassword("", h1))
}

func TestCreateAdminUser(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		password     string
		displayName  string
		expectedName string
	}{
		{
			name:         "explicit name kept",
			email:        "ops@example.com",
			password:     "pw1",
			displayName:  "Operations",
			expectedName: "Operations",
		},
		{
			name:         "name defaults to email local part",
			email:        "alice@example.com",
			password:     "pw1",
			displayName:  "",
			expectedName: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := &MockAdminUserRepo{}
			repoMock.On("Upsert", mock.Anything, mock.MatchedBy(func(a *model.AdminUser) bool {
				return a.Email == tt.email &&
					a.Name == tt.expectedName &&
					a.PasswordHash != "" &&
					a.PasswordHash != tt.password
			})).Return(nil)

			svc := NewAdminAuthService(repoMock, 4)
			admin, err := svc.CreateAdminUser(context.Background(), tt.email, tt.password, tt.displayName)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedName, admin.Name)
			assert.True(t, svc.ComparePassword(tt.password, admin.PasswordHash))
			repoMock.AssertExpectations(t)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewAdminAuthService(&MockAdminUserRepo{}, 4)
	goodHash, err := svc.HashPassword("pw1")
	assert.NoError(t, err)

	tests := []struct {
		name         string
		setup        func(*MockAdminUserRepo)
		email        string
		password     string
		wantIdentity bool
		wantErr      bool
	}{
		{
			name: "unknown email returns nil, not error",
			setup: func(r *MockAdminUserRepo) {
				r.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, nil)
			},
			email:    "nobody@x.com",
			password: "pw1",
		},
		{
			name: "inactive account cannot authenticate",
			setup: func(r *MockAdminUserRepo) {
				r.On("GetByEmail", mock.Anything, "a@x.com").Return(&model.AdminUser{
					ID: 1, Email: "a@x.com", PasswordHash: goodHash, IsActive: false,
				}, nil)
			},
			email:    "a@x.com",
			password: "pw1",
		},
		{
			name: "wrong password returns nil, not error",
			setup: func(r *MockAdminUserRepo) {
				r.On("GetByEmail", mock.Anything, "a@x.com").Return(&model.AdminUser{
					ID: 1, Email: "a@x.com", PasswordHash: goodHash, IsActive: true,
				}, nil)
			},
			email:    "a@x.com",
			password: "pw2",
		},
		{
			name: "valid credentials refresh last signed in",
			setup: func(r *MockAdminUserRepo) {
				r.On("GetByEmail", mock.Anything, "a@x.com").Return(&model.AdminUser{
					ID: 1, Email: "a@x.com", Name: "A", PasswordHash: goodHash, IsActive: true,
				}, nil)
				r.On("TouchLastSignedIn", mock.Anything, uint(1), mock.MatchedBy(func(at time.Time) bool {
					return time.Since(at) < time.Minute
				})).Return(nil)
			},
			email:        "a@x.com",
			password:     "pw1",
			wantIdentity: true,
		},
		{
			name: "backend failure surfaces as error",
			setup: func(r *MockAdminUserRepo) {
				r.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("connection refused"))
			},
			email:    "a@x.com",
			password: "pw1",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := &MockAdminUserRepo{}
			tt.setup(repoMock)

			svc := NewAdminAuthService(repoMock, 4)
			identity, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, identity)
				return
			}

			assert.NoError(t, err)
			if tt.wantIdentity {
				assert.NotNil(t, identity)
				assert.Equal(t, uint(1), identity.ID)
				assert.Equal(t, "a@x.com", identity.Email)
			} else {
				assert.Nil(t, identity)
			}
			repoMock.AssertExpectations(t)
		})
	}
}
