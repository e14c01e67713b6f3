package admin

import (
	"github.com/contentforge/contentforge-api/internal/config"
	handlers "github.com/contentforge/contentforge-api/internal/http/api/admin/handlers"
	"github.com/contentforge/contentforge-api/internal/http/api/admin/permissions"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/security"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers admin routes, middleware, and handlers.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, resp *shared.Responder) {
	if r == nil || db == nil {
		return
	}
	shared.RegisterJSONFieldNames()

	authed := r.Group("/admin")
	authed.Use(shared.AuthMiddleware(security.NewGate(db, jwtCfg.Secret), resp))
	authed.Use(shared.AdminMiddleware(resp))

	userHandler := handlers.NewUserHandler(db, subscription.NewService(db), resp)
	permissionHandler := handlers.NewPermissionHandler(resp)

	routes := map[string]gin.HandlerFunc{
		permissions.Key("GET", "/users"):                  userHandler.List,
		permissions.Key("GET", "/users/:id"):              userHandler.Get,
		permissions.Key("PUT", "/users/:id"):              userHandler.Update,
		permissions.Key("POST", "/users/:id/reset-usage"): userHandler.ResetUsage,
		permissions.Key("GET", "/users/:id/payments"):     userHandler.Payments,
		permissions.Key("GET", "/permissions"):            permissionHandler.List,
	}
	for _, def := range permissions.Definitions() {
		handler, ok := routes[def.Key]
		if !ok {
			log.Warnf("admin: no handler for %s", def.Key)
			continue
		}
		authed.Handle(def.Method, def.Path, handler)
	}
}
