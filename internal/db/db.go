package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notely/internal/model"
)

// Open returns a connected GORM DB for the given driver ("mysql" or "sqlite").
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	db, err := gorm.Open(dialector, gormConfig(log.New(os.Stdout, "\r\n", log.LstdFlags)))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// gormConfig logs slow queries and errors to w. Misses are expected lookups
// (existence checks) and are not logged.
func gormConfig(w logger.Writer) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(w, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Migrate creates or updates the schema. With reset set, existing tables are dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	tables := []interface{}{&model.User{}, &model.Note{}}
	if reset {
		if err := db.Migrator().DropTable(tables...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
