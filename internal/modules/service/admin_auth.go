package service

import (
	"context"
	"strings"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"golang.org/x/crypto/bcrypt"
)

// AdminIdentity is the reduced admin record handed out after authentication.
// It never carries the password hash.
type AdminIdentity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AdminAuthService interface {
	HashPassword(plain string) (string, error)
	ComparePassword(plain, hash string) bool
	// CreateAdminUser hashes the password and upserts the account keyed on
	// email. Name defaults to the email local part when empty.
	CreateAdminUser(ctx context.Context, email, password, name string) (*model.AdminUser, error)
	// Authenticate returns (nil, nil) for unknown email, inactive account or
	// wrong password. It errors only when the backend is unreachable.
	Authenticate(ctx context.Context, email, password string) (*AdminIdentity, error)
	GetByID(ctx context.Context, id uint) (*model.AdminUser, error)
}

type adminAuthService struct {
	r    repo.AdminUserRepo
	cost int
}

func NewAdminAuthService(r repo.AdminUserRepo, bcryptCost int) AdminAuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &adminAuthService{r: r, cost: bcryptCost}
}

func (s *adminAuthService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *adminAuthService) ComparePassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (s *adminAuthService) CreateAdminUser(ctx context.Context, email, password, name string) (*model.AdminUser, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	admin := &model.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
	}
	if err := s.r.Upsert(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminAuthService) Authenticate(ctx context.Context, email, password string) (*AdminIdentity, error) {
	admin, err := s.r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.IsActive {
		return nil, nil
	}
	if !s.ComparePassword(password, admin.PasswordHash) {
		return nil, nil
	}

	// Best effort; a failed touch must not fail the login.
	_ = s.r.TouchLastSignedIn(ctx, admin.ID, time.Now())

	return &AdminIdentity{ID: admin.ID, Email: admin.Email, Name: admin.Name}, nil
}

func (s *adminAuthService) GetByID(ctx context.Context, id uint) (*model.AdminUser, error) {
	return s.r.GetByID(ctx, id)
}
