package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/datanest-io/datanest/internal/bootstrap"
	"github.com/datanest-io/datanest/internal/config"
	"github.com/datanest-io/datanest/internal/infra/authgw"
	"github.com/datanest-io/datanest/internal/modules/handler"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/datanest-io/datanest/internal/modules/session"
	"github.com/datanest-io/datanest/internal/router"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// provision the initial admin account, if configured
	if cfg.Auth.SeedAdminEmail != "" && cfg.Auth.SeedAdminPassword != "" {
		admins := do.MustInvoke[service.AdminAuthService](inj)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := admins.CreateAdminUser(ctx, cfg.Auth.SeedAdminEmail, cfg.Auth.SeedAdminPassword, cfg.Auth.SeedAdminName); err != nil {
			log.Sugar().Warnw("seed admin provisioning failed", "err", err)
		}
		cancel()
	}

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             log,
		AuthGateway:     do.MustInvoke[*authgw.Client](inj),
		Users:           do.MustInvoke[service.UserService](inj),
		ApiKeys:         do.MustInvoke[service.ApiKeyService](inj),
		Sessions:        do.MustInvoke[session.Store](inj),
		AuthHandler:     do.MustInvoke[*handler.AuthHandler](inj),
		ProjectHandler:  do.MustInvoke[*handler.ProjectHandler](inj),
		ApiKeyHandler:   do.MustInvoke[*handler.ApiKeyHandler](inj),
		DataHandler:     do.MustInvoke[*handler.DataHandler](inj),
		ExternalHandler: do.MustInvoke[*handler.ExternalHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
