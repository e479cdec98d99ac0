package handler

import (
	"net/http"
	"time"

	"github.com/datanest-io/datanest/internal/config"
	"github.com/datanest-io/datanest/internal/middleware"
	"github.com/datanest-io/datanest/internal/modules/serializer"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/datanest-io/datanest/internal/modules/session"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	admins   service.AdminAuthService
	sessions session.Store
	cfg      *config.Config
}

func NewAuthHandler(admins service.AdminAuthService, sessions session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{admins: admins, sessions: sessions, cfg: cfg}
}

// SessionInfo reports who is calling: the resolved end user and the admin
// session, either of which may be absent.
//
//	@Summary	Introspect the current session
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	serializer.Response
//	@Router		/auth/session [get]
func (h *AuthHandler) SessionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{
		"user":         middleware.UserFrom(c),
		"adminSession": middleware.AdminFrom(c),
	}})
}

// UserLogout clears the end-user session cookie.
//
//	@Summary	Log the end user out
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	serializer.Response
//	@Router		/auth/logout [post]
func (h *AuthHandler) UserLogout(c *gin.Context) {
	middleware.ClearUserSessionCookie(c, h.cfg.Auth.SecureCookies)
	c.JSON(http.StatusOK, serializer.Response{Msg: "logged out"})
}

type AdminLoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin verifies admin credentials and opens a server-side session.
// Wrong credentials answer 401, never an error.
//
//	@Summary	Admin login
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		payload	body	handler.AdminLoginReq	true	"credentials"
//	@Success	200	{object}	serializer.Response
//	@Router		/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	req := AdminLoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	identity, err := h.admins.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	if identity == nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid email or password"))
		return
	}

	rec := session.Record{ID: identity.ID, Email: identity.Email, Name: identity.Name}
	sid, err := h.sessions.Create(c.Request.Context(), rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.Err(http.StatusInternalServerError, "failed to open session", err))
		return
	}

	middleware.SetAdminSessionCookie(c, sid, h.sessions.TTL(), h.cfg.Auth.SecureCookies)
	c.JSON(http.StatusOK, serializer.Response{Data: identity, Msg: "logged in"})
}

// AdminLogout deletes the server-side session record and expires the cookie.
//
//	@Summary	Admin logout
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	serializer.Response
//	@Router		/admin/logout [post]
func (h *AuthHandler) AdminLogout(c *gin.Context) {
	if sid, err := c.Cookie(middleware.AdminSessionCookie); err == nil && sid != "" {
		// A failed delete still expires the cookie; the record times out on
		// its own TTL.
		_ = h.sessions.Delete(c.Request.Context(), sid)
	}
	middleware.ClearAdminSessionCookie(c, h.cfg.Auth.SecureCookies)
	c.JSON(http.StatusOK, serializer.Response{Msg: "logged out"})
}

// Health answers liveness for the panel surface.
//
//	@Summary	Panel health check
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	serializer.Response
//	@Router		/system/health [get]
func (h *AuthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.Response{Msg: "ok", Data: gin.H{
		"name": h.cfg.App.Name,
		"time": time.Now().UTC(),
	}})
}
