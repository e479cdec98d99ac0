package db

import (
	"github.com/datanest-io/datanest/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New opens the postgres handle with the configured pool limits. The handle
// is built exactly once at startup; repos tolerate a nil handle when the DSN
// is absent or the connect failed.
func New(cfg *config.Config) (*gorm.DB, error) {
	d, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	}
	if cfg.Database.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	}

	return d, nil
}
