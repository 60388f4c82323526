package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/service-scheduler/internal/config"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := db.Exec(`
        UPDATE companies
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone).Error; err != nil {
		log.Warn().Err(err).Msg("timezone backfill failed")
	}

	// The exclusion constraint is the full-overlap rule; installing it under
	// start_in_range would reject bookings that rule accepts.
	if cfg.ConflictRule == "overlap" {
		if err := ensureOverlapConstraint(db); err != nil {
			log.Warn().Err(err).Msg("overlap constraint not installed, relying on transactional check")
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func ensureOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	return db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_staff_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_staff_no_overlap
                EXCLUDE USING gist (
                    staff_id WITH =,
                    tstzrange(start_datetime, end_datetime, '[)') WITH &&
                ) WHERE (status <> 'canceled');
            END IF;
        END $$;
    `).Error
}
