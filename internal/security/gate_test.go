package security

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/models"
)

func TestGate_Resolve(t *testing.T) {
	conn, err := db.Open("file:" + filepath.Join(t.TempDir(), "gate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(conn) })
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	user := &models.User{Email: "gate@example.com", Password: "x", Tier: "free", UsageQuota: 5}
	if errCreate := conn.Create(user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}

	gate := NewGate(conn, "secret")
	ctx := context.Background()
	now := time.Now()

	valid, _ := IssueUserToken("secret", user.ID, time.Hour, now)
	got, errResolve := gate.Resolve(ctx, "Bearer "+valid)
	if errResolve != nil || got.ID != user.ID {
		t.Fatalf("resolve valid token: %+v %v", got, errResolve)
	}

	expired, _ := IssueUserToken("secret", user.ID, time.Hour, now.Add(-2*time.Hour))
	foreign, _ := IssueUserToken("other", user.ID, time.Hour, now)
	ghost, _ := IssueUserToken("secret", user.ID+100, time.Hour, now)

	cases := []struct {
		name   string
		header string
		key    string
	}{
		{"missing header", "", "auth.token_missing"},
		{"no bearer prefix", valid, "auth.token_missing"},
		{"empty bearer", "Bearer   ", "auth.token_missing"},
		{"expired", "Bearer " + expired, "auth.token_expired"},
		{"wrong secret", "Bearer " + foreign, "auth.token_invalid"},
		{"garbage", "Bearer abc.def.ghi", "auth.token_invalid"},
		{"deleted user", "Bearer " + ghost, "auth.user_not_found"},
	}
	for _, tc := range cases {
		_, errCase := gate.Resolve(ctx, tc.header)
		appErr := apperr.As(errCase)
		if appErr == nil || appErr.Kind != apperr.KindUnauthenticated || appErr.MessageKey != tc.key {
			t.Fatalf("%s: expected unauthenticated %s, got %v", tc.name, tc.key, errCase)
		}
	}
}
