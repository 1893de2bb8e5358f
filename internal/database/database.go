package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/config"
	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the pool and stores it in DB. Development logs every
// statement; other environments only slow or failing ones.
func Connect(cfg *config.Config) error {
	level := logger.Warn
	if cfg.AppEnv == "development" {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:      logger.Default.LogMode(level),
		NowFunc:     func() time.Time { return time.Now().UTC() },
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	DB = db
	slog.Info("database connected", "host", cfg.DBHost, "db", cfg.DBName)
	return nil
}

// MigrateCore creates the booking tables plus users, refresh tokens and logs.
// Order matters: bookings reference every other booking table.
func MigrateCore() error {
	return MigrateModels([]interface{}{
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.SessionLocation{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.SystemLog{},
	})
}

// MigrateModels runs AutoMigrate for plugin models.
func MigrateModels(modelList []interface{}) error {
	if len(modelList) == 0 {
		return nil
	}
	if err := DB.AutoMigrate(modelList...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping checks the pooled connection. It matches handlers.Pinger.
func Ping(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
