// Package shared holds the request context helpers, middleware, and response
// envelope used by the front and admin APIs.
package shared

import (
	"github.com/contentforge/contentforge-api/internal/i18n"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware in this package.
const (
	UserKey = "user"
	LangKey = "lang"
)

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// Lang returns the resolved response language, resolving it on demand when
// the language middleware did not run.
func Lang(c *gin.Context) i18n.Lang {
	if value, ok := c.Get(LangKey); ok {
		if lang, okLang := value.(i18n.Lang); okLang {
			return lang
		}
	}
	return i18n.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
}
