// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres connection pool.
//
// TranslateError is on so driver duplicate-key failures surface as
// gorm.ErrDuplicatedKey, which the stores map to their sentinel errors.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if coreCfg.Env == "dev" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(appCfg.PostgresDSN), gormCfg)
	if err != nil {
		logger.Error("postgres connect failed", zap.Error(err))
		return DBDeps{}, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return DBDeps{}, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("postgres ping failed", zap.Error(err))
		return DBDeps{}, err
	}

	logger.Info("postgres connected")
	return DBDeps{DB: db}, nil
}

// EnsureSchema migrates the schema. AutoMigrate is additive: it creates
// missing tables, columns, and indexes and never drops data.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	err := deps.DB.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
	)
	if err != nil {
		logger.Error("schema migration failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured")
	return nil
}
