package handlers

import (
	"net/http"
	"time"

	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	db   *gorm.DB
	resp *shared.Responder
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *gorm.DB, resp *shared.Responder) *HealthHandler {
	return &HealthHandler{db: db, resp: resp}
}

// Health pings the database.
func (h *HealthHandler) Health(c *gin.Context) {
	now := time.Now().UTC()
	if errPing := db.Ping(h.db); errPing != nil {
		log.WithError(errPing).Warn("health: database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success":   false,
			"status":    "error",
			"database":  "unavailable",
			"message":   h.resp.T(c, "errors.database"),
			"timestamp": now,
		})
		return
	}
	h.resp.OK(c, http.StatusOK, "health.ok", gin.H{
		"status":    "ok",
		"database":  "ok",
		"timestamp": now,
	})
}
