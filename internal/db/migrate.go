package db

import (
	"fmt"

	"github.com/contentforge/contentforge-api/internal/models"
	"gorm.io/gorm"
)

// Migrate runs database migrations for the current dialect.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	switch DialectName(conn) {
	case DialectSQLite:
		return migrateSQLite(conn)
	case DialectPostgres, "":
		return migratePostgres(conn)
	default:
		return fmt.Errorf("db: unsupported dialect: %s", DialectName(conn))
	}
}

// schemaModels lists every persisted model in dependency order.
func schemaModels() []any {
	return []any{
		&models.User{},
		&models.Payment{},
		&models.GenerationRecord{},
	}
}

// migratePostgres applies PostgreSQL schema updates and indexes.
func migratePostgres(conn *gorm.DB) error {
	if errAutoMigrate := conn.AutoMigrate(schemaModels()...); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	if errIndex := conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_generation_records_user_created
		ON generation_records (user_id, created_at DESC)
	`).Error; errIndex != nil {
		return fmt.Errorf("db: create generation history index: %w", errIndex)
	}
	if errIndex := conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_paid_tier_expiry
		ON users (tier_expires_at)
		WHERE tier <> 'free'
	`).Error; errIndex != nil {
		return fmt.Errorf("db: create tier expiry index: %w", errIndex)
	}
	return nil
}

// migrateSQLite applies SQLite schema updates and indexes.
func migrateSQLite(conn *gorm.DB) error {
	if errPragma := conn.Exec("PRAGMA foreign_keys=ON").Error; errPragma != nil {
		return fmt.Errorf("db: enable foreign keys: %w", errPragma)
	}
	if errAutoMigrate := conn.AutoMigrate(schemaModels()...); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	if errIndex := conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_generation_records_user_created
		ON generation_records (user_id, created_at)
	`).Error; errIndex != nil {
		return fmt.Errorf("db: create generation history index: %w", errIndex)
	}
	return nil
}
