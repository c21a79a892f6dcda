package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/warbler/internal/config"
	"github.com/d60-Lab/warbler/internal/model"
)

// Open connects to the store named by the DSN. A postgres URL selects the
// postgres driver, anything else is treated as a sqlite file path.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	if cfg.UsesPostgres() {
		dial = postgres.Open(cfg.DatabaseURL)
	} else {
		dial = sqlite.Open(cfg.DatabaseURL)
	}
	// no TranslateError: the repositories map raw driver errors themselves,
	// keeping the violated column visible
	return gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Migrate creates or updates the four tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Message{},
		&model.Follow{},
		&model.Like{},
	)
}
