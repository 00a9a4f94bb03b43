package daemon

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/db/dsn"
	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
)

const (
	maxOpenConns    = 25
	connMaxLifetime = 5 * time.Minute
)

// dialector picks the gorm driver for the configured engine.
func dialector(cfg *config.Config) (gorm.Dialector, error) {
	source := dsn.Create(cfg)

	switch cfg.DB.GormEngine {
	case config.EngineSQLite, "":
		return sqlite.Open(source), nil
	case config.EngineMySQL:
		return gormmysql.Open(source), nil
	case config.EnginePostgres:
		return gormpostgres.Open(source), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedEngine, cfg.DB.GormEngine)
	}
}

// OpenDB connects to the configured database and migrates the schema.
// Duplicate key errors of every driver are translated to gorm.ErrDuplicatedKey.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.DevMode {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", d.Name())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql db")
	}

	if d.Name() == "sqlite" {
		// one writer at a time, concurrent writers would fail with SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
