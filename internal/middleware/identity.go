package middleware

import (
	"context"

	"github.com/datanest-io/datanest/internal/infra/authgw"
	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/datanest-io/datanest/internal/modules/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys and cookie names shared by the identity middleware and the
// auth handlers.
const (
	CtxUser         = "user"
	CtxAdminSession = "adminSession"
	CtxApiKey       = "apiKey"

	UserSessionCookie  = "session"
	AdminSessionCookie = "admin_session"
)

// UserVerifier is the slice of the auth gateway the middleware needs.
type UserVerifier interface {
	Verify(ctx context.Context, token string) (*authgw.Identity, error)
}

// Identity resolves the optional end-user identity from the session cookie
// via the auth gateway, and the optional admin session from the opaque
// admin_session cookie via the session store. Neither failure aborts the
// request; downstream gates decide what is required.
func Identity(gw UserVerifier, users service.UserService, sessions session.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// End-user identity. Any gateway failure means anonymous.
		if token, err := c.Cookie(UserSessionCookie); err == nil && token != "" {
			id, err := gw.Verify(c.Request.Context(), token)
			if err != nil {
				log.Sugar().Debugw("auth gateway lookup failed", "err", err)
			} else if id != nil {
				user := resolveUser(c, users, id)
				c.Set(CtxUser, user)
			}
		}

		// Admin session. Absent or unknown cookie means no session.
		if sid, err := c.Cookie(AdminSessionCookie); err == nil && sid != "" {
			rec, err := sessions.Get(c.Request.Context(), sid)
			if err != nil {
				log.Sugar().Debugw("admin session lookup failed", "err", err)
			} else if rec != nil {
				c.Set(CtxAdminSession, rec)
			}
		}

		c.Next()
	}
}

// resolveUser records the sign-in (upsert-on-login) and loads the stored
// row. When the datastore is down both steps degrade and the gateway's view
// of the user stands in, keeping unrelated request paths functional.
func resolveUser(c *gin.Context, users service.UserService, id *authgw.Identity) *model.User {
	ctx := c.Request.Context()

	in := repo.UpsertUserInput{OpenID: id.OpenID}
	if id.Name != "" {
		in.Name = &id.Name
	}
	if id.Email != "" {
		in.Email = &id.Email
	}
	if id.Provider != "" {
		in.Provider = &id.Provider
	}
	_ = users.Upsert(ctx, in)

	if user, err := users.GetByOpenID(ctx, id.OpenID); err == nil && user != nil {
		return user
	}
	return &model.User{
		OpenID:   id.OpenID,
		Name:     id.Name,
		Email:    id.Email,
		Provider: id.Provider,
		Role:     model.RoleUser,
	}
}

// UserFrom returns the resolved end user, if any.
func UserFrom(c *gin.Context) *model.User {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// AdminFrom returns the resolved admin session, if any.
func AdminFrom(c *gin.Context) *session.Record {
	if v, ok := c.Get(CtxAdminSession); ok {
		if rec, ok := v.(*session.Record); ok {
			return rec
		}
	}
	return nil
}
