package bootstrap

import (
	"time"

	"github.com/datanest-io/datanest/internal/config"
	"github.com/datanest-io/datanest/internal/infra/authgw"
	"github.com/datanest-io/datanest/internal/infra/cache"
	"github.com/datanest-io/datanest/internal/infra/db"
	"github.com/datanest-io/datanest/internal/infra/logger"
	"github.com/datanest-io/datanest/internal/modules/handler"
	"github.com/datanest-io/datanest/internal/modules/model"
	"github.com/datanest-io/datanest/internal/modules/repo"
	"github.com/datanest-io/datanest/internal/modules/service"
	"github.com/datanest-io/datanest/internal/modules/session"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB. A missing DSN or a failed connect yields a nil handle: the repos
	// degrade per their contracts instead of the process refusing to start.
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)

		if cfg.Database.DSN == "" {
			log.Sugar().Warn("no database DSN configured, running degraded")
			return nil, nil
		}
		d, err := db.New(cfg)
		if err != nil {
			log.Sugar().Errorw("database connect failed, running degraded", "err", err)
			return nil, nil
		}

		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.AdminUser{},
				&model.Project{},
				&model.ApiKey{},
				&model.DynamicData{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// Admin session store
	do.Provide(inj, func(i *do.Injector) (session.Store, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb := do.MustInvoke[*redis.Client](i)
		ttl := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
		return session.NewRedisStore(rdb, ttl), nil
	})

	// Auth gateway
	do.Provide(inj, func(i *do.Injector) (*authgw.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return authgw.NewClient(cfg, log), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return repo.NewUserRepo(
			do.MustInvoke[*gorm.DB](i),
			cfg.Auth.OwnerOpenID,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AdminUserRepo, error) {
		return repo.NewAdminUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ApiKeyRepo, error) {
		return repo.NewApiKeyRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.DynamicDataRepo, error) {
		return repo.NewDynamicDataRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(do.MustInvoke[repo.UserRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AdminAuthService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewAdminAuthService(do.MustInvoke[repo.AdminUserRepo](i), cfg.Auth.BcryptCost), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(do.MustInvoke[repo.ProjectRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ApiKeyService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewApiKeyService(do.MustInvoke[repo.ApiKeyRepo](i), cfg.Auth.ApiKeyPrefix), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.DynamicDataService, error) {
		return service.NewDynamicDataService(do.MustInvoke[repo.DynamicDataRepo](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(
			do.MustInvoke[service.AdminAuthService](i),
			do.MustInvoke[session.Store](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ApiKeyHandler, error) {
		return handler.NewApiKeyHandler(
			do.MustInvoke[service.ApiKeyService](i),
			do.MustInvoke[service.ProjectService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.DataHandler, error) {
		return handler.NewDataHandler(
			do.MustInvoke[service.DynamicDataService](i),
			do.MustInvoke[service.ProjectService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ExternalHandler, error) {
		return handler.NewExternalHandler(
			do.MustInvoke[service.DynamicDataService](i),
			do.MustInvoke[service.ProjectService](i),
		), nil
	})

	return inj
}
