package db

import (
	"log"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/config"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Client{},
		&models.Session{},
		&models.Membership{},
		&models.BehaviouralBrief{},
		&models.BehaviourQuestionnaire{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Existing duplicate emails make this fail; the per-email lock still
	// guards new rows.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_contact_email_lower
        ON clients (LOWER(contact_email))
        WHERE contact_email IS NOT NULL AND contact_email <> ''
    `).Error; err != nil {
		slog.Warn("unique email index not created", "error", err)
	}

	return db
}
