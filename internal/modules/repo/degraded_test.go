package repo

import (
	"context"
	"testing"
	"time"

	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Every repo method must answer ErrUnavailable when no datastore handle
// exists. The one exception is the user upsert, which degrades silently so
// a sign-in never fails on a down database.

func TestUserRepo_NilHandle(t *testing.T) {
	r := NewUserRepo(nil, "", zap.NewNop())
	ctx := context.Background()

	// upsert swallows the outage
	assert.NoError(t, r.Upsert(ctx, UpsertUserInput{OpenID: "op-1"}))

	// but still rejects a missing key
	err := r.Upsert(ctx, UpsertUserInput{})
	assert.ErrorIs(t, err, ErrValidation)

	// reads do surface the outage
	user, err := r.GetByOpenID(ctx, "op-1")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAdminUserRepo_NilHandle(t *testing.T) {
	r := NewAdminUserRepo(nil)
	ctx := context.Background()

	assert.ErrorIs(t, r.Upsert(ctx, &model.AdminUser{Email: "a@x.com", PasswordHash: "h"}), ErrUnavailable)

	admin, err := r.GetByEmail(ctx, "a@x.com")
	assert.Nil(t, admin)
	assert.ErrorIs(t, err, ErrUnavailable)

	admin, err = r.GetByID(ctx, 1)
	assert.Nil(t, admin)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, r.TouchLastSignedIn(ctx, 1, time.Now()), ErrUnavailable)
}

func TestProjectRepo_NilHandle(t *testing.T) {
	r := NewProjectRepo(nil)
	ctx := context.Background()

	assert.ErrorIs(t, r.Create(ctx, &model.Project{OwnerID: 1, Name: "P1"}), ErrUnavailable)

	projects, err := r.ListByOwner(ctx, 1)
	assert.Nil(t, projects)
	assert.ErrorIs(t, err, ErrUnavailable)

	project, err := r.GetByID(ctx, 1)
	assert.Nil(t, project)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, r.Update(ctx, 1, map[string]interface{}{"name": "P2"}), ErrUnavailable)
	assert.ErrorIs(t, r.SoftDelete(ctx, 1), ErrUnavailable)
}

func TestApiKeyRepo_NilHandle(t *testing.T) {
	r := NewApiKeyRepo(nil)
	ctx := context.Background()

	assert.ErrorIs(t, r.Create(ctx, &model.ApiKey{ProjectID: 1, Name: "ci", Key: "dk-x"}), ErrUnavailable)

	keys, err := r.ListByProject(ctx, 1)
	assert.Nil(t, keys)
	assert.ErrorIs(t, err, ErrUnavailable)

	key, err := r.GetByKey(ctx, "dk-x")
	assert.Nil(t, key)
	assert.ErrorIs(t, err, ErrUnavailable)

	key, err = r.GetByID(ctx, 1)
	assert.Nil(t, key)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, r.Revoke(ctx, 1), ErrUnavailable)
	assert.ErrorIs(t, r.TouchLastUsed(ctx, 1, time.Now()), ErrUnavailable)
}

func TestDynamicDataRepo_NilHandle(t *testing.T) {
	r := NewDynamicDataRepo(nil)
	ctx := context.Background()

	assert.ErrorIs(t, r.Insert(ctx, &model.DynamicData{ProjectID: 1, Data: datatypes.JSON(`{}`)}), ErrUnavailable)

	items, err := r.ListByProject(ctx, 1, 10, 0)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrUnavailable)

	count, err := r.CountByProject(ctx, 1)
	assert.Zero(t, count)
	assert.ErrorIs(t, err, ErrUnavailable)

	record, err := r.GetByID(ctx, 1)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, r.Update(ctx, 1, datatypes.JSON(`{}`)), ErrUnavailable)
	assert.ErrorIs(t, r.Delete(ctx, 1), ErrUnavailable)

	items, err = r.Search(ctx, 1, SearchDataFilters{})
	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrUnavailable)
}
