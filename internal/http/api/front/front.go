package front

import (
	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/generation"
	handlers "github.com/contentforge/contentforge-api/internal/http/api/front/handlers"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/ratelimit"
	"github.com/contentforge/contentforge-api/internal/security"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers the public and user-authenticated routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, orchestrator *generation.Orchestrator, limiter *ratelimit.Manager, resp *shared.Responder) {
	if r == nil || db == nil {
		return
	}
	shared.RegisterJSONFieldNames()

	subs := subscription.NewService(db)
	recorder := generation.NewRecorder(db)
	gate := security.NewGate(db, jwtCfg.Secret)

	healthHandler := handlers.NewHealthHandler(db, resp)
	r.GET("/health", healthHandler.Health)

	public := r.Group("")
	public.Use(shared.RateLimitMiddleware(limiter, resp, nil))

	authHandler := handlers.NewAuthHandler(db, jwtCfg, subs, resp)
	public.POST("/signup", authHandler.Signup)
	public.POST("/login", authHandler.Login)

	authed := r.Group("")
	authed.Use(shared.AuthMiddleware(gate, resp))
	authed.Use(shared.RateLimitMiddleware(limiter, resp, nil))

	subscriptionHandler := handlers.NewSubscriptionHandler(subs, resp)
	authed.GET("/check-subscription", subscriptionHandler.Check)
	authed.POST("/update-subscription", subscriptionHandler.Update)
	authed.GET("/check-payment/:id", subscriptionHandler.CheckPayment)
	authed.GET("/payments", subscriptionHandler.ListPayments)

	contentHandler := handlers.NewContentHandler(orchestrator, recorder, subs, resp)
	authed.POST("/generate", contentHandler.Generate)
	authed.POST("/ideas", contentHandler.Ideas)
	authed.POST("/trends", contentHandler.Trends)
	authed.GET("/generations", contentHandler.History)

	userHandler := handlers.NewUserHandler(subs, resp)
	authed.GET("/user-info", userHandler.Info)
}
