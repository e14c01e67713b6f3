package shared

import (
	"strconv"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/i18n"
	"github.com/contentforge/contentforge-api/internal/logging"
	"github.com/contentforge/contentforge-api/internal/ratelimit"
	"github.com/contentforge/contentforge-api/internal/security"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// LangMiddleware resolves the response language once per request.
func LangMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(LangKey, i18n.Resolve(c.Query("lang"), c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// AuthMiddleware rejects requests without a valid user token and stores the
// user in the context.
func AuthMiddleware(gate *security.Gate, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, errResolve := gate.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if errResolve != nil {
			resp.Error(c, errResolve)
			return
		}
		c.Set(UserKey, user)
		c.Set(logging.UserIDKey, user.ID)
		c.Next()
	}
}

// AdminMiddleware requires the authenticated user to be an administrator.
func AdminMiddleware(resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			resp.Error(c, apperr.Unauthenticated("auth.token_missing"))
			return
		}
		if !user.IsAdmin {
			resp.Error(c, apperr.Forbidden("auth.admin_required"))
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware throttles authenticated users per tier and anonymous
// callers per client address.
func RateLimitMiddleware(manager *ratelimit.Manager, resp *Responder, nowFn func() time.Time) gin.HandlerFunc {
	if nowFn == nil {
		nowFn = time.Now
	}
	return func(c *gin.Context) {
		if manager == nil {
			c.Next()
			return
		}
		settings := manager.Settings()
		var decision ratelimit.Decision
		if user := CurrentUser(c); user != nil {
			decision = ratelimit.ResolveLimit(settings, user, nowFn())
		} else {
			decision = ratelimit.ResolveAddressLimit(settings, c.ClientIP())
		}

		result, errAllow := manager.Check(c.Request.Context(), decision)
		if errAllow != nil {
			log.WithError(errAllow).Warn("rate limit: check failed")
			c.Next()
			return
		}
		if decision.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		}
		if !result.Allowed {
			if !result.Reset.IsZero() {
				c.Header("X-RateLimit-Reset", strconv.FormatInt(result.Reset.Unix(), 10))
			}
			resp.Error(c, apperr.New(apperr.KindRateLimited, "errors.rate_limited"))
			return
		}
		c.Next()
	}
}
