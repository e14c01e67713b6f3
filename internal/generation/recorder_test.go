package generation

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/models"
	"gorm.io/gorm"
)

func openRecorderDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open("file:" + filepath.Join(t.TempDir(), "generation.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, email string, count, quota int, admin bool) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Tier: "free", UsageCount: count, UsageQuota: quota, IsAdmin: admin}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRecorder_RecordIncrementsUsage(t *testing.T) {
	conn := openRecorderDB(t)
	user := createUser(t, conn, "a@example.com", 0, 5, false)
	recorder := NewRecorder(conn)
	outcome := Outcome{Content: Template(Request{Niche: "art"}), ProviderUsed: ProviderNone, Note: NoteTemplate}

	record, err := recorder.Record(context.Background(), user, Request{Niche: "art", Platform: "tiktok"}, outcome, true)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if record.ID == 0 || record.Kind != models.GenerationKindTrends || record.Provider != ProviderNone {
		t.Fatalf("unexpected record %+v", record)
	}
	if user.UsageCount != 1 {
		t.Fatalf("expected in-memory usage 1, got %d", user.UsageCount)
	}

	var stored models.User
	if errFind := conn.First(&stored, user.ID).Error; errFind != nil {
		t.Fatalf("reload user: %v", errFind)
	}
	if stored.UsageCount != 1 {
		t.Fatalf("expected stored usage 1, got %d", stored.UsageCount)
	}

	records, total, errHistory := recorder.History(context.Background(), user.ID, "", 10, 0)
	if errHistory != nil {
		t.Fatalf("history: %v", errHistory)
	}
	if total != 1 || len(records) != 1 || records[0].Platform != "tiktok" {
		t.Fatalf("unexpected history %v (total %d)", records, total)
	}
}

func TestRecorder_QuotaGuardRollsBack(t *testing.T) {
	conn := openRecorderDB(t)
	user := createUser(t, conn, "b@example.com", 5, 5, false)
	recorder := NewRecorder(conn)

	_, err := recorder.Record(context.Background(), user, Request{Niche: "art"}, Outcome{Content: map[string]any{}}, true)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	var count int64
	conn.Model(&models.GenerationRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no records after rollback, got %d", count)
	}
}

func TestRecorder_AdminAndUnmeteredSkipIncrement(t *testing.T) {
	conn := openRecorderDB(t)
	admin := createUser(t, conn, "admin@example.com", 9, 5, true)
	member := createUser(t, conn, "c@example.com", 2, 5, false)
	recorder := NewRecorder(conn)

	if _, err := recorder.Record(context.Background(), admin, Request{Niche: "x"}, Outcome{Content: map[string]any{}}, true); err != nil {
		t.Fatalf("admin record: %v", err)
	}
	if _, err := recorder.Record(context.Background(), member, Request{Schema: SchemaIdeas, Niche: "y"}, Outcome{Content: map[string]any{}}, false); err != nil {
		t.Fatalf("unmetered record: %v", err)
	}

	var storedAdmin, storedMember models.User
	conn.First(&storedAdmin, admin.ID)
	conn.First(&storedMember, member.ID)
	if storedAdmin.UsageCount != 9 || storedMember.UsageCount != 2 {
		t.Fatalf("usage changed: admin=%d member=%d", storedAdmin.UsageCount, storedMember.UsageCount)
	}

	records, total, err := recorder.History(context.Background(), member.ID, models.GenerationKindIdeas, 10, 0)
	if err != nil || total != 1 || records[0].Kind != models.GenerationKindIdeas {
		t.Fatalf("unexpected history %v total=%d err=%v", records, total, err)
	}
}
