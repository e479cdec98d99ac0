package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/datanest-io/datanest/internal/config"
	"github.com/datanest-io/datanest/internal/infra/authgw"
	"github.com/datanest-io/datanest/internal/middleware"
	"github.com/datanest-io/datanest/internal/modules/handler"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/datanest-io/datanest/internal/modules/session"
)

type RouterDeps struct {
	Config          *config.Config
	Log             *zap.Logger
	AuthGateway     *authgw.Client
	Users           service.UserService
	ApiKeys         service.ApiKeyService
	Sessions        session.Store
	AuthHandler     *handler.AuthHandler
	ProjectHandler  *handler.ProjectHandler
	ApiKeyHandler   *handler.ApiKeyHandler
	DataHandler     *handler.DataHandler
	ExternalHandler *handler.ExternalHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(d.Log))

	// Panel surface: cookie-based, namespaced like the dashboard's
	// procedure groups.
	panel := r.Group("/api/panel")
	{
		panel.Use(middleware.Identity(d.AuthGateway, d.Users, d.Sessions, d.Log))

		system := panel.Group("/system")
		{
			system.GET("/health", d.AuthHandler.Health)
		}

		auth := panel.Group("/auth")
		{
			auth.GET("/session", d.AuthHandler.SessionInfo)
			auth.POST("/logout", d.AuthHandler.UserLogout)
		}

		admin := panel.Group("/admin")
		{
			admin.POST("/login", d.AuthHandler.AdminLogin)
			admin.POST("/logout", d.AuthHandler.AdminLogout)
		}

		// Everything below mutates or reads tenant state and sits behind
		// the dual gate: end-user identity AND admin session.
		gated := panel.Group("")
		{
			gated.Use(middleware.RequireAdmin())

			projects := gated.Group("/projects")
			{
				projects.GET("", d.ProjectHandler.ListProjects)
				projects.POST("", d.ProjectHandler.CreateProject)
				projects.GET("/:id", d.ProjectHandler.GetProject)
				projects.PATCH("/:id", d.ProjectHandler.UpdateProject)
				projects.DELETE("/:id", d.ProjectHandler.DeleteProject)

				projects.GET("/:id/keys", d.ApiKeyHandler.ListKeys)
				projects.POST("/:id/keys", d.ApiKeyHandler.CreateKey)

				projects.GET("/:id/data", d.DataHandler.ListData)
				projects.POST("/:id/data", d.DataHandler.CreateData)
				projects.GET("/:id/data/search", d.DataHandler.SearchData)
			}

			gated.DELETE("/keys/:id", d.ApiKeyHandler.RevokeKey)
			gated.PUT("/data/:id", d.DataHandler.UpdateData)
			gated.DELETE("/data/:id", d.DataHandler.DeleteData)
		}
	}

	// External surface: API-key bearer, uniformly mounted under /api/v1.
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", d.ExternalHandler.Health)

		authed := v1.Group("")
		{
			authed.Use(middleware.ApiKeyAuth(d.ApiKeys))

			authed.GET("/data", d.ExternalHandler.ListData)
			authed.POST("/data", d.ExternalHandler.CreateData)
			authed.GET("/data/search", d.ExternalHandler.SearchData)
			authed.PUT("/data/:id", d.ExternalHandler.UpdateData)
			authed.DELETE("/data/:id", d.ExternalHandler.DeleteData)

			authed.GET("/project", d.ExternalHandler.GetProject)
		}
	}

	return r
}
