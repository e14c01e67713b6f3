package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func TestSetup_InvalidLevel(t *testing.T) {
	if _, err := Setup(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	closer, err := Setup(config.LoggingConfig{Level: "info", JSON: true, File: file, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() {
		_ = closer.Close()
		log.SetOutput(os.Stdout)
		log.SetFormatter(&log.TextFormatter{})
	})

	log.WithField("component", "test").Info("hello file")

	data, errRead := os.ReadFile(file)
	if errRead != nil {
		t.Fatalf("read log file: %v", errRead)
	}
	if !strings.Contains(string(data), `"msg":"hello file"`) {
		t.Fatalf("expected json log line, got %q", string(data))
	}
}

func TestGinLogger_LogsStatusAndUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFormatter(&log.JSONFormatter{})
	t.Cleanup(func() {
		log.SetOutput(os.Stdout)
		log.SetFormatter(&log.TextFormatter{})
	})

	engine := gin.New()
	engine.Use(GinLogger())
	engine.GET("/ping", func(c *gin.Context) {
		c.Set(UserIDKey, uint64(7))
		c.Status(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	out := buf.String()
	if !strings.Contains(out, `"status":418`) || !strings.Contains(out, `"user_id":7`) {
		t.Fatalf("unexpected log output %q", out)
	}
	if !strings.Contains(out, `"level":"warning"`) {
		t.Fatalf("expected warning level for 4xx, got %q", out)
	}
}
