package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HasAdminInitialized reports whether the system has at least one admin account.
func HasAdminInitialized(conn *gorm.DB) (bool, error) {
	if conn == nil {
		return false, fmt.Errorf("nil db")
	}
	if !conn.Migrator().HasTable(&models.User{}) {
		return false, nil
	}
	var count int64
	if errCount := conn.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; errCount != nil {
		return false, errCount
	}
	return count > 0, nil
}

// CreateAdminUserWithConn creates an administrator, or promotes the existing
// user with the same email.
func CreateAdminUserWithConn(conn *gorm.DB, email, password string) error {
	if conn == nil {
		return fmt.Errorf("open database: nil connection")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("admin email is required")
	}

	var existing models.User
	errFind := conn.Where("email = ?", email).First(&existing).Error
	if errFind == nil {
		if errPromote := conn.Model(&models.User{}).Where("id = ?", existing.ID).Update("is_admin", true).Error; errPromote != nil {
			return fmt.Errorf("promote admin: %w", errPromote)
		}
		return nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find admin: %w", errFind)
	}

	if len(password) < 6 {
		return fmt.Errorf("admin password must be at least 6 characters")
	}
	hashedPassword, errHash := security.HashPassword(password)
	if errHash != nil {
		return fmt.Errorf("hash password: %w", errHash)
	}
	admin := models.User{
		Email:      email,
		Password:   hashedPassword,
		Tier:       string(entitlement.TierFree),
		UsageQuota: models.DefaultUsageQuota,
		IsAdmin:    true,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		if db.IsUniqueViolation(errCreate) {
			return conn.Model(&models.User{}).Where("email = ?", email).Update("is_admin", true).Error
		}
		return fmt.Errorf("create admin: %w", errCreate)
	}
	return nil
}

// EnsureAdmin bootstraps the configured administrator account. Nothing happens
// when no admin email is configured.
func EnsureAdmin(conn *gorm.DB, cfg config.AdminConfig) error {
	if strings.TrimSpace(cfg.Email) == "" {
		initialized, errInit := HasAdminInitialized(conn)
		if errInit != nil {
			return errInit
		}
		if !initialized {
			log.Warn("no administrator configured; set ADMIN_EMAIL and ADMIN_PASSWORD to create one")
		}
		return nil
	}
	if errCreate := CreateAdminUserWithConn(conn, cfg.Email, cfg.Password); errCreate != nil {
		return errCreate
	}
	log.Infof("administrator %s ready", strings.ToLower(strings.TrimSpace(cfg.Email)))
	return nil
}
