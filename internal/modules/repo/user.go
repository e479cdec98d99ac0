package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertUserInput carries the openid key plus the fields the auth provider
// supplied for this sign-in. Nil fields are left untouched on update.
type UpsertUserInput struct {
	OpenID   string
	Name     *string
	Email    *string
	Provider *string
	Role     *string
}

type UserRepo interface {
	// Upsert inserts or updates a user keyed on openid. It no-ops with a log
	// line when no datastore handle exists; callers must not assume the
	// write occurred.
	Upsert(ctx context.Context, in UpsertUserInput) error
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)
}

type userRepo struct {
	db          *gorm.DB
	ownerOpenID string
	log         *zap.Logger
}

// NewUserRepo builds a UserRepo. ownerOpenID is the configured identity that
// gets the admin role on first sight.
func NewUserRepo(db *gorm.DB, ownerOpenID string, log *zap.Logger) UserRepo {
	return &userRepo{db: db, ownerOpenID: ownerOpenID, log: log}
}

func (r *userRepo) Upsert(ctx context.Context, in UpsertUserInput) error {
	if in.OpenID == "" {
		return fmt.Errorf("%w: openid is required", ErrValidation)
	}
	if r.db == nil {
		r.log.Sugar().Warnw("skipping user upsert, datastore unavailable", "openid", in.OpenID)
		return nil
	}

	now := time.Now()
	role := model.RoleUser
	if in.Role != nil {
		role = *in.Role
	} else if in.OpenID == r.ownerOpenID {
		role = model.RoleAdmin
	}

	user := model.User{
		OpenID:         in.OpenID,
		Role:           role,
		LastSignedInAt: &now,
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Provider != nil {
		user.Provider = *in.Provider
	}

	// Update only the fields this sign-in supplied; always refresh
	// last_signed_in_at. Atomicity is the unique index's problem.
	assignments := map[string]interface{}{"last_signed_in_at": now}
	if in.Name != nil {
		assignments["name"] = *in.Name
	}
	if in.Email != nil {
		assignments["email"] = *in.Email
	}
	if in.Provider != nil {
		assignments["provider"] = *in.Provider
	}
	if in.Role != nil {
		assignments["role"] = *in.Role
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&user).Error
}

func (r *userRepo) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	if r.db == nil {
		return nil, ErrUnavailable
	}
	var user model.User
	err := r.db.WithContext(ctx).Where(&model.User{OpenID: openID}).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
