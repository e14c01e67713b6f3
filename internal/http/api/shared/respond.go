package shared

import (
	"net/http"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/i18n"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Responder renders localized JSON envelopes.
type Responder struct {
	catalog *i18n.Catalog
}

// NewResponder constructs a Responder over catalog.
func NewResponder(catalog *i18n.Catalog) *Responder {
	return &Responder{catalog: catalog}
}

// T translates key into the request language.
func (r *Responder) T(c *gin.Context, key string, args ...string) string {
	return r.catalog.T(Lang(c), key, args...)
}

// OK writes {success: true, message} merged with extra.
func (r *Responder) OK(c *gin.Context, status int, messageKey string, extra gin.H) {
	body := gin.H{"success": true, "message": r.T(c, messageKey)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error maps err to its kind and writes the error envelope.
func (r *Responder) Error(c *gin.Context, err error) {
	appErr := apperr.As(err)
	status := appErr.Kind.Status()
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	_ = c.Error(err)

	body := gin.H{
		"success": false,
		"error":   string(appErr.Kind),
		"message": r.T(c, appErr.MessageKey),
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
