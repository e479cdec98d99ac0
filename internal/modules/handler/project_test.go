package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/datanest-io/datanest/internal/middleware"
	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/datanest-io/datanest/internal/modules/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

// MockProjectService is a mock implementation of service.ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, ownerID uint, name, description string, schema datatypes.JSONMap) (*model.Project, error) {
	args := m.Called(ctx, ownerID, name, description, schema)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) ListByOwner(ctx context.Context, ownerID uint) ([]model.Project, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, id uint, in service.UpdateProjectInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockProjectService) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupPanelRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withAdmin installs the dual identity the admin gate expects.
func withAdmin(adminID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUser, &model.User{ID: 1, OpenID: "op-1", Role: model.RoleAdmin})
		c.Set(middleware.CtxAdminSession, &session.Record{ID: adminID, Email: "a@x.com", Name: "A"})
		c.Next()
	}
}

func TestProjectHandler_GetProject_Ownership(t *testing.T) {
	tests := []struct {
		name           string
		sessionAdminID uint
		setup          func(*MockProjectService)
		expectedStatus int
	}{
		{
			name:           "owner can read the project",
			sessionAdminID: 1,
			setup: func(svc *MockProjectService) {
				svc.On("GetByID", mock.Anything, uint(10)).Return(&model.Project{
					ID: 10, OwnerID: 1, Name: "P1", IsActive: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "foreign admin is forbidden",
			sessionAdminID: 2,
			setup: func(svc *MockProjectService) {
				svc.On("GetByID", mock.Anything, uint(10)).Return(&model.Project{
					ID: 10, OwnerID: 1, Name: "P1", IsActive: true,
				}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "absent project is forbidden, not 404",
			sessionAdminID: 1,
			setup: func(svc *MockProjectService) {
				svc.On("GetByID", mock.Anything, uint(10)).Return(nil, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockProjectService{}
			tt.setup(mockService)

			handler := NewProjectHandler(mockService)
			router := setupPanelRouter()
			router.GET("/projects/:id", withAdmin(tt.sessionAdminID), handler.GetProject)

			req := httptest.NewRequest("GET", "/projects/10", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestProjectHandler_GetProject_IDBeyondUint32IsBadRequest(t *testing.T) {
	mockService := &MockProjectService{}

	handler := NewProjectHandler(mockService)
	router := setupPanelRouter()
	router.GET("/projects/:id", withAdmin(1), handler.GetProject)

	// 2^32: must be rejected at parse time, never truncated to id 0
	req := httptest.NewRequest("GET", "/projects/4294967296", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByID")
}

func TestProjectHandler_CreateProject(t *testing.T) {
	mockService := &MockProjectService{}
	mockService.On("Create", mock.Anything, uint(1), "P1", "demo", mock.Anything).
		Return(&model.Project{ID: 10, OwnerID: 1, Name: "P1", Description: "demo", IsActive: true}, nil)

	handler := NewProjectHandler(mockService)
	router := setupPanelRouter()
	router.POST("/projects", withAdmin(1), handler.CreateProject)

	body, _ := sonic.Marshal(CreateProjectReq{Name: "P1", Description: "demo"})
	req := httptest.NewRequest("POST", "/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestProjectHandler_CreateProject_MissingName(t *testing.T) {
	handler := NewProjectHandler(&MockProjectService{})
	router := setupPanelRouter()
	router.POST("/projects", withAdmin(1), handler.CreateProject)

	req := httptest.NewRequest("POST", "/projects", bytes.NewReader([]byte(`{"description":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_DeleteProject_SoftDeletes(t *testing.T) {
	mockService := &MockProjectService{}
	mockService.On("GetByID", mock.Anything, uint(10)).Return(&model.Project{
		ID: 10, OwnerID: 1, Name: "P1", IsActive: true,
	}, nil)
	mockService.On("SoftDelete", mock.Anything, uint(10)).Return(nil)

	handler := NewProjectHandler(mockService)
	router := setupPanelRouter()
	router.DELETE("/projects/:id", withAdmin(1), handler.DeleteProject)

	req := httptest.NewRequest("DELETE", "/projects/10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
