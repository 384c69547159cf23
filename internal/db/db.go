package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/saloon-scheduler/internal/config"
	"github.com/BruksfildServices01/saloon-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		return nil, err
	}

	log.Info("database ready",
		zap.Int("max_open_conns", cfg.DBMaxOpenConns),
		zap.Int("max_idle_conns", cfg.DBMaxIdleConns),
	)
	return db, nil
}

// Migrate creates the tables and the overlap exclusion constraint. Safe to
// run on every start.
func Migrate(db *gorm.DB, defaultTimezone string) error {
	if err := db.AutoMigrate(
		&models.Saloon{},
		&models.Staff{},
		&models.ServiceVariation{},
		&models.WorkingDay{},
		&models.BreakTime{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate constraints: %w", err)
		}
	}

	return db.Exec(`
        UPDATE saloons
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTimezone).Error
}

var constraintStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                staff_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            )
            WHERE (status IN ('pending', 'confirmed', 'completed'));
    END IF;
END
$$`,
	`DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_window_valid'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_window_valid CHECK (end_time > start_time);
    END IF;
END
$$`,
}
