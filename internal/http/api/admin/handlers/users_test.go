package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/i18n"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUsersFixture(t *testing.T) (*gin.Engine, *gorm.DB, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open("file:" + filepath.Join(t.TempDir(), "admin-users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	require.NoError(t, db.Migrate(conn))

	admin := models.User{Email: "root@example.com", Password: "x", Tier: "free", UsageQuota: 5, IsAdmin: true}
	require.NoError(t, conn.Create(&admin).Error)
	member := models.User{Email: "member@example.com", Password: "x", Tier: "free", UsageQuota: 5}
	require.NoError(t, conn.Create(&member).Error)

	catalog, err := i18n.Load()
	require.NoError(t, err)
	handler := NewUserHandler(conn, subscription.NewService(conn), shared.NewResponder(catalog))

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(shared.UserKey, &admin)
		c.Next()
	})
	engine.PUT("/admin/users/:id", handler.Update)
	return engine, conn, &member
}

func putUser(t *testing.T, engine *gin.Engine, id uint64, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/users/%d", id), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestUpdate_TierAndQuotaTogether(t *testing.T) {
	engine, conn, member := newUsersFixture(t)

	rec := putUser(t, engine, member.ID, map[string]any{"usage_quota": 40, "subscription_type": "premium", "duration": 10})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored models.User
	require.NoError(t, conn.First(&stored, member.ID).Error)
	assert.Equal(t, "premium", stored.Tier)
	assert.NotNil(t, stored.TierExpiresAt)
	assert.Equal(t, 40, stored.UsageQuota)
}

func TestUpdate_FailedColumnWriteRollsBackTier(t *testing.T) {
	engine, conn, member := newUsersFixture(t)
	require.NoError(t, conn.Callback().Update().Before("gorm:update").Register("test:fail_quota", func(tx *gorm.DB) {
		if values, ok := tx.Statement.Dest.(map[string]any); ok {
			if _, has := values["usage_quota"]; has {
				_ = tx.AddError(errors.New("quota write failed"))
			}
		}
	}))

	rec := putUser(t, engine, member.ID, map[string]any{"usage_quota": 40, "subscription_type": "premium", "duration": 10})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var stored models.User
	require.NoError(t, conn.First(&stored, member.ID).Error)
	assert.Equal(t, "free", stored.Tier)
	assert.Nil(t, stored.TierExpiresAt)
	assert.Equal(t, 5, stored.UsageQuota)
}

func TestUpdate_InvalidTierKeepsQuota(t *testing.T) {
	engine, conn, member := newUsersFixture(t)

	rec := putUser(t, engine, member.ID, map[string]any{"usage_quota": 40, "subscription_type": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var stored models.User
	require.NoError(t, conn.First(&stored, member.ID).Error)
	assert.Equal(t, 5, stored.UsageQuota)
}

func TestUpdate_SelfDemotionRejected(t *testing.T) {
	engine, _, _ := newUsersFixture(t)

	rec := putUser(t, engine, 1, map[string]any{"is_admin": false})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
