package app

import (
	"path/filepath"
	"testing"

	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/security"
	"gorm.io/gorm"
)

func openAppTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(config.BuildSQLiteDSN(filepath.Join(t.TempDir(), "admin.db")))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}

func TestHasAdminInitialized_MissingTable(t *testing.T) {
	conn := openAppTestDB(t)
	initialized, err := HasAdminInitialized(conn)
	if err != nil {
		t.Fatalf("has admin: %v", err)
	}
	if initialized {
		t.Fatalf("expected no admin before migration")
	}
}

func TestCreateAdminUserWithConn(t *testing.T) {
	conn := openAppTestDB(t)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := CreateAdminUserWithConn(conn, " Root@Example.com ", "123456"); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	var admin models.User
	if err := conn.Where("email = ?", "root@example.com").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatalf("expected admin flag")
	}
	if !security.CheckPassword(admin.Password, "123456") {
		t.Fatalf("expected stored password hash to match")
	}

	initialized, err := HasAdminInitialized(conn)
	if err != nil || !initialized {
		t.Fatalf("expected admin initialized, got %v (err=%v)", initialized, err)
	}
}

func TestCreateAdminUserWithConn_PromotesExisting(t *testing.T) {
	conn := openAppTestDB(t)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	hash, _ := security.HashPassword("member-pass")
	member := models.User{Email: "member@example.com", Password: hash, Tier: "free", UsageQuota: models.DefaultUsageQuota}
	if err := conn.Create(&member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	if err := CreateAdminUserWithConn(conn, "member@example.com", ""); err != nil {
		t.Fatalf("promote: %v", err)
	}
	var reloaded models.User
	if err := conn.First(&reloaded, member.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsAdmin {
		t.Fatalf("expected existing user to be promoted")
	}
	if !security.CheckPassword(reloaded.Password, "member-pass") {
		t.Fatalf("expected password to stay unchanged")
	}
}

func TestCreateAdminUserWithConn_ShortPassword(t *testing.T) {
	conn := openAppTestDB(t)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := CreateAdminUserWithConn(conn, "root@example.com", "123"); err == nil {
		t.Fatalf("expected short password error")
	}
}

func TestEnsureAdmin_NoEmailIsNoop(t *testing.T) {
	conn := openAppTestDB(t)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := EnsureAdmin(conn, config.AdminConfig{}); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	var count int64
	conn.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}
