package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/generation"
	"github.com/contentforge/contentforge-api/internal/http/api/admin"
	"github.com/contentforge/contentforge-api/internal/http/api/front"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/i18n"
	"github.com/contentforge/contentforge-api/internal/logging"
	"github.com/contentforge/contentforge-api/internal/provider"
	"github.com/contentforge/contentforge-api/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate opens the database and runs migrations.
func Migrate(cfg config.Config) error {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := db.Close(conn); errClose != nil {
			log.Errorf("sql db close error: %v", errClose)
		}
	}()
	return db.Migrate(conn)
}

// RunServer opens the database, builds every component from cfg, and serves
// HTTP until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.Config) error {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := db.Close(conn); errClose != nil {
			log.Errorf("sql db close error: %v", errClose)
		}
	}()
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errAdmin := EnsureAdmin(conn, cfg.Admin); errAdmin != nil {
		return errAdmin
	}

	limiter := ratelimit.NewManager(ratelimit.StaticSettings(cfg.RateLimit), nil, nil)
	defer func() {
		if errClose := limiter.Close(); errClose != nil {
			log.Errorf("rate limit redis close error: %v", errClose)
		}
	}()

	handler, errHandler := NewHandler(conn, cfg, NewOrchestrator(cfg.Providers), limiter)
	if errHandler != nil {
		return errHandler
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			log.Errorf("server shutdown error: %v", errShutdown)
		}
	}()

	log.Infof("starting server on %s (database=%s)", srv.Addr, db.DialectName(conn))
	if errListen := srv.ListenAndServe(); errListen != nil && !errors.Is(errListen, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", errListen)
	}
	log.Info("server stopped")
	return nil
}

// NewOrchestrator builds the provider chain: Grok first, then OpenAI.
func NewOrchestrator(providers config.ProvidersConfig) *generation.Orchestrator {
	return generation.NewOrchestrator(
		generation.NewChatStrategy(provider.NewClient(generation.ProviderGrok, providers.Grok)),
		generation.NewChatStrategy(provider.NewClient(generation.ProviderOpenAI, providers.OpenAI)),
	)
}

// NewHandler assembles the gin engine with every route and wraps it in CORS.
func NewHandler(conn *gorm.DB, cfg config.Config, orchestrator *generation.Orchestrator, limiter *ratelimit.Manager) (http.Handler, error) {
	if conn == nil {
		return nil, fmt.Errorf("app: nil database")
	}
	catalog, errCatalog := i18n.Load()
	if errCatalog != nil {
		return nil, errCatalog
	}
	resp := shared.NewResponder(catalog)

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), logging.GinLogger(), shared.LangMiddleware())

	front.RegisterFrontRoutes(engine, conn, cfg.JWT, orchestrator, limiter, resp)
	admin.RegisterAdminRoutes(engine, conn, cfg.JWT, resp)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "not_found",
			"message": resp.T(c, "errors.not_found"),
		})
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept-Language"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
	})
	return corsHandler.Handler(engine), nil
}
