package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"vetclinic/internal/infrastructure/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm connects to the SQL store selected by driver ("postgres" or
// "sqlite"). TranslateError is on so unique violations surface as
// gorm.ErrDuplicatedKey regardless of the dialect.
func OpenGorm(driver string, cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		pg := cfg.Postgres
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			pg.Host, pg.User, pg.Password, pg.Name, pg.Port, pg.SSLMode, pg.TimeZone,
		)
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}

	if driver == config.DriverSQLite {
		// sqlite serializes writers; a single connection keeps transactions
		// from failing with "database is locked" and keeps :memory: shared.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	pg := cfg.Postgres
	if pg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
	}
	if pg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
	}
	if pg.ConnMaxLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(pg.ConnMaxLifeTime)
	}
	return db, nil
}
